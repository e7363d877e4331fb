package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/models"
	"github.com/netaaura/netaaura/internal/policy"
	"github.com/netaaura/netaaura/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func politicianHandler(db *gorm.DB, dir string) *PoliticianHandler {
	return NewPoliticianHandler(db, storage.NewStore(dir), policy.NewAuthGate(db))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Politician{}, &models.Rating{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, staff bool) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Username: email, IsStaff: staff}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createPolitician(t *testing.T, db *gorm.DB, name string, approved bool) models.Politician {
	t.Helper()
	p := models.Politician{Name: name, Image: "face.jpg", IsApproved: approved}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create politician: %v", err)
	}
	return p
}

// asUser injects an authenticated session user into the request context.
func asUser(r *http.Request, uid uint) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), uid))
}

// withID sets the {id} path value the router would have extracted.
func withID(r *http.Request, id uint) *http.Request {
	r.SetPathValue("id", strconv.FormatUint(uint64(id), 10))
	return r
}

func mustRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != location {
		t.Fatalf("expected redirect to %q got %q", location, loc)
	}
}
