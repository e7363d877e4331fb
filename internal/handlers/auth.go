package handlers

import (
	"net/http"
	"strings"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "signup", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	pass := r.FormValue("password")
	username := strings.TrimSpace(r.FormValue("username"))
	if email == "" || pass == "" {
		renderTemplate(w, r, "signup", map[string]any{"Error": "email and password required"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes.
		renderTemplate(w, r, "signup", map[string]any{"Error": "could not create user"})
		return
	}
	user := models.User{Email: email, Password: string(hash), Username: username}
	if err := h.DB.Create(&user).Error; err != nil {
		renderTemplate(w, r, "signup", map[string]any{"Error": "could not create user"})
		return
	}
	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if uid, ok := auth.UserIDFromContext(r.Context()); ok && uid != 0 {
			var count int64
			if err := h.DB.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err == nil && count > 0 {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			// Stale session: clear and continue to render login
			auth.ClearSession(w)
		}
		renderTemplate(w, r, "login", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	pass := r.FormValue("password")
	if email == "" || pass == "" {
		renderTemplate(w, r, "login", map[string]any{"Error": "email and password required"})
		return
	}
	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		renderTemplate(w, r, "login", map[string]any{"Error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(pass)) != nil {
		renderTemplate(w, r, "login", map[string]any{"Error": "invalid credentials"})
		return
	}
	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
