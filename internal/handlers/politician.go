package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/middleware"
	"github.com/netaaura/netaaura/internal/models"
	"github.com/netaaura/netaaura/internal/policy"
	"github.com/netaaura/netaaura/internal/storage"
	"github.com/netaaura/netaaura/internal/validation"
	"github.com/netaaura/netaaura/internal/view"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxUploadBytes = 10 << 20

type PoliticianHandler struct {
	DB    *gorm.DB
	Store *storage.Store
	Gate  *policy.AuthGate
}

func NewPoliticianHandler(db *gorm.DB, store *storage.Store, gate *policy.AuthGate) *PoliticianHandler {
	return &PoliticianHandler{DB: db, Store: store, Gate: gate}
}

// render uses the shared view.Render to ensure layout, funcs, and caching.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

// listEntry pairs a politician with the requesting user's own rating, if any.
type listEntry struct {
	models.Politician
	UserRating *models.Rating
}

// List shows all approved politicians. Authenticated requesters additionally
// see their own prior rating next to each entry.
func (h *PoliticianHandler) List(w http.ResponseWriter, r *http.Request) {
	var politicians []models.Politician
	if err := h.DB.Where("is_approved = ?", true).Order("id asc").Find(&politicians).Error; err != nil {
		http.Error(w, "failed to list politicians", http.StatusInternalServerError)
		return
	}
	entries := make([]listEntry, 0, len(politicians))
	for _, p := range politicians {
		entries = append(entries, listEntry{Politician: p})
	}
	if uid, ok := auth.UserIDFromContext(r.Context()); ok && len(politicians) > 0 {
		ids := make([]uint, 0, len(politicians))
		for _, p := range politicians {
			ids = append(ids, p.ID)
		}
		var mine []models.Rating
		if err := h.DB.Where("user_id = ? AND politician_id IN ?", uid, ids).Find(&mine).Error; err == nil {
			byPolitician := make(map[uint]models.Rating, len(mine))
			for _, rt := range mine {
				byPolitician[rt.PoliticianID] = rt
			}
			for i := range entries {
				if rt, ok := byPolitician[entries[i].ID]; ok {
					own := rt
					entries[i].UserRating = &own
				}
			}
		}
	}
	renderTemplate(w, r, "politician_list", map[string]any{"Politicians": entries})
}

// Detail shows one politician with its ratings and comments. The view policy
// hides pending profiles behind a 404 for everyone but staff, including the
// creator. POST submits a comment (authenticated users only) and redirects back.
func (h *PoliticianHandler) Detail(w http.ResponseWriter, r *http.Request) {
	politician, ok := h.visibleByID(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost {
		h.submitComment(w, r, politician)
		return
	}

	var ratings []models.Rating
	if err := h.DB.Where("politician_id = ?", politician.ID).Order("created_at desc").Find(&ratings).Error; err != nil {
		http.Error(w, "failed to load ratings", http.StatusInternalServerError)
		return
	}
	var comments []models.Comment
	if err := h.DB.Preload("User").Where("politician_id = ?", politician.ID).Order("created_at desc").Find(&comments).Error; err != nil {
		http.Error(w, "failed to load comments", http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "politician_detail", map[string]any{
		"Politician": politician,
		"Ratings":    ratings,
		"Comments":   comments,
	})
}

func (h *PoliticianHandler) submitComment(w http.ResponseWriter, r *http.Request, politician *models.Politician) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		middleware.Flash(w, "You must be logged in to comment.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := r.FormValue("text")
	v := validation.Violations{}
	validation.Required("text", text, v)
	if !v.Empty() {
		middleware.Flash(w, "Comment cannot be empty.")
		http.Redirect(w, r, "/politicians/"+strconv.FormatUint(uint64(politician.ID), 10)+"/", http.StatusSeeOther)
		return
	}
	comment := models.Comment{PoliticianID: politician.ID, UserID: uid, Text: text}
	if err := h.DB.Create(&comment).Error; err != nil {
		http.Error(w, "could not save comment", http.StatusInternalServerError)
		return
	}
	middleware.Flash(w, "Comment added!")
	http.Redirect(w, r, "/politicians/"+strconv.FormatUint(uint64(politician.ID), 10)+"/", http.StatusSeeOther)
}

// politicianInput is the typed form payload for a new politician.
type politicianInput struct {
	Name        string
	Party       string
	Position    string
	Biography   string
	SocialLinks datatypes.JSONMap
	Tags        string
}

func validatePolitician(in politicianInput) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	validation.MaxLen("party", in.Party, 255, v)
	validation.MaxLen("position", in.Position, 255, v)
	validation.MaxLen("tags", in.Tags, 255, v)
	return v
}

// parseSocialLinks accepts a blank value (stored as an empty map) or a JSON
// object of platform name to URL.
func parseSocialLinks(raw string) (datatypes.JSONMap, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return datatypes.JSONMap{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return datatypes.JSONMap(m), nil
}

// Add presents the submission form (GET) and creates a pending politician (POST).
// The route is wrapped in RequireAuth.
func (h *PoliticianHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "add_politician", nil)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := politicianInput{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Party:     strings.TrimSpace(r.FormValue("party")),
		Position:  strings.TrimSpace(r.FormValue("position")),
		Biography: r.FormValue("biography"),
		Tags:      strings.TrimSpace(r.FormValue("tags")),
	}
	v := validatePolitician(in)
	links, err := parseSocialLinks(r.FormValue("social_links"))
	if err != nil {
		v["social_links"] = "invalid_json"
	} else {
		in.SocialLinks = links
	}
	file, header, ferr := r.FormFile("image")
	if ferr != nil {
		v["image"] = "required"
	}
	if !v.Empty() {
		if file != nil {
			file.Close()
		}
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "add_politician", map[string]any{"Errors": v, "Input": in})
		return
	}
	defer file.Close()

	imageName, err := h.Store.Save(file, header)
	if err != nil {
		http.Error(w, "could not save image", http.StatusInternalServerError)
		return
	}

	uid, _ := auth.UserIDFromContext(r.Context())
	politician := models.Politician{
		Name:        in.Name,
		Party:       in.Party,
		Position:    in.Position,
		Biography:   in.Biography,
		SocialLinks: in.SocialLinks,
		Tags:        in.Tags,
		Image:       imageName,
		IsApproved:  false, // needs staff approval
		CreatedByID: &uid,
	}
	if err := h.DB.Create(&politician).Error; err != nil {
		_ = h.Store.Remove(imageName)
		http.Error(w, "could not save politician", http.StatusInternalServerError)
		return
	}
	middleware.Flash(w, "Politician added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete shows a confirmation page (GET) and removes the politician with all
// of its ratings and comments (POST). Staff only; the route is gated on the
// delete action.
func (h *PoliticianHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var politician models.Politician
	if err := h.DB.First(&politician, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to load politician", http.StatusInternalServerError)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "confirm_delete", map[string]any{"Politician": politician})
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("politician_id = ?", politician.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("politician_id = ?", politician.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&politician).Error
	})
	if err != nil {
		http.Error(w, "could not delete politician", http.StatusInternalServerError)
		return
	}
	_ = h.Store.Remove(politician.Image)
	middleware.Flash(w, politician.Name+" has been deleted!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// visibleByID loads the politician addressed by the {id} path value, writing a
// 404 when it is absent or the view policy hides it from the current user.
func (h *PoliticianHandler) visibleByID(w http.ResponseWriter, r *http.Request) (*models.Politician, bool) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	var politician models.Politician
	err := h.DB.First(&politician, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		http.Error(w, "failed to load politician", http.StatusInternalServerError)
		return nil, false
	}
	if !h.Gate.Can(r, policy.ActionView, &politician) {
		http.NotFound(w, r)
		return nil, false
	}
	return &politician, true
}

func parseID(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}
