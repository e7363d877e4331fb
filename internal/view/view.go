// Package view renders server-side templates with a shared layout. Handlers
// hand it a page name and a data map; layout lookup, caching and the common
// defaults (Flash, IsLoggedIn, Year) are handled here.
package view

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/middleware"
)

var (
	baseDir  string
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
}

// ResetForTests clears the template cache and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
}

// Funcs returns the shared template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		// fmtAura renders averages with two decimals, as the approve list shows them.
		"fmtAura": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	}
}

// Render parses and executes a template file wrapped in layout.html.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		detectBase()
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Flash"]; !exists {
		if msg := middleware.PopFlash(w, r); msg != "" {
			data["Flash"] = msg
		}
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	layoutPath := filepath.Join(baseDir, "layout.html")
	var t *template.Template
	if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
		parsed, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(layoutPath, mainPath)
		if err != nil {
			return err
		}
		t = parsed
	} else {
		parsed, err := template.New(name).Funcs(Funcs()).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t.Execute(w, data)
}
