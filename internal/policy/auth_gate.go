package policy

import (
	"net/http"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/middleware"
	"github.com/netaaura/netaaura/internal/models"
	"gorm.io/gorm"
)

// AuthGate binds the Gate to the session context and the users table.
type AuthGate struct {
	DB   *gorm.DB
	Gate *Gate
}

// NewAuthGate creates the gate with the politician policy registered.
func NewAuthGate(db *gorm.DB) *AuthGate {
	g := NewGate()
	g.Register("politician", NewPoliticianPolicy())
	return &AuthGate{DB: db, Gate: g}
}

// Actor resolves the current user from the request context. Returns a zero
// User for anonymous requests or stale sessions.
func (ag *AuthGate) Actor(r *http.Request) models.User {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		return models.User{}
	}
	var user models.User
	if err := ag.DB.First(&user, uid).Error; err != nil {
		return models.User{}
	}
	return user
}

// Authorize checks whether the current user may perform the action.
func (ag *AuthGate) Authorize(r *http.Request, action Action, resourceType string, resource any) error {
	return ag.Gate.Authorize(r.Context(), ag.Actor(r), action, resourceType, resource)
}

// Can reports whether the current user may perform the action on a politician.
func (ag *AuthGate) Can(r *http.Request, action Action, resource any) bool {
	return ag.Authorize(r, action, "politician", resource) == nil
}

// Require blocks the route unless the politician policy authorizes the action.
// Anonymous requests are sent to login; authenticated but denied actors get 403.
func (ag *AuthGate) Require(action Action, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := ag.Actor(r)
		if actor.ID == 0 {
			middleware.Flash(w, "You must be logged in.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := ag.Gate.Authorize(r.Context(), actor, action, "politician", nil); err != nil {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
