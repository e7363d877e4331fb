package server

import (
	"context"
	"net/http"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/handlers"
	"github.com/netaaura/netaaura/internal/httpx"
	"github.com/netaaura/netaaura/internal/middleware"
	"github.com/netaaura/netaaura/internal/models"
	"github.com/netaaura/netaaura/internal/policy"
	"github.com/netaaura/netaaura/internal/storage"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, store *storage.Store) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth double-checks that the session's user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	gate := policy.NewAuthGate(db)

	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	ph := handlers.NewPoliticianHandler(db, store, gate)
	rh := handlers.NewRatingHandler(db)
	ah := handlers.NewApproveHandler(db)

	// Public listing and detail; comment POST checks authentication itself so
	// anonymous visitors still see the detail page.
	mux.HandleFunc("GET /{$}", ph.List)
	mux.HandleFunc("GET /politicians/{id}/{$}", ph.Detail)
	mux.HandleFunc("POST /politicians/{id}/{$}", ph.Detail)

	mux.Handle("GET /politicians/add/{$}", auth.RequireAuth(http.HandlerFunc(ph.Add)))
	mux.Handle("POST /politicians/add/{$}", auth.RequireAuth(http.HandlerFunc(ph.Add)))
	mux.Handle("POST /politicians/{id}/rate/{$}", auth.RequireAuth(http.HandlerFunc(rh.Rate)))

	mux.Handle("GET /approve/{$}", gate.Require(policy.ActionApprove, http.HandlerFunc(ah.List)))
	mux.Handle("POST /approve/{id}/{$}", gate.Require(policy.ActionApprove, http.HandlerFunc(ah.Approve)))
	mux.Handle("GET /politician/{id}/delete/{$}", gate.Require(policy.ActionDelete, http.HandlerFunc(ph.Delete)))
	mux.Handle("POST /politician/{id}/delete/{$}", gate.Require(policy.ActionDelete, http.HandlerFunc(ph.Delete)))

	// Uploaded politician images.
	mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(store.Dir))))
	// Static assets (CSS).
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return auth.Middleware(middleware.WithRecover(middleware.WithLogging(mux)))
}
