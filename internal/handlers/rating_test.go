package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/netaaura/netaaura/internal/models"
)

func rate(t *testing.T, h *RatingHandler, politicianID, userID uint, score string) *httptest.ResponseRecorder {
	t.Helper()
	form := strings.NewReader(url.Values{"aura_score": {score}}.Encode())
	req := asUser(withID(httptest.NewRequest(http.MethodPost, "/politicians/1/rate/", form), politicianID), userID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Rate(w, req)
	return w
}

func TestRateUpsertAndAverage(t *testing.T) {
	db := setupTestDB(t)
	h := NewRatingHandler(db)
	p := createPolitician(t, db, "A. Example", true)
	u1 := createUser(t, db, "one@test", false)
	u2 := createUser(t, db, "two@test", false)

	mustRedirect(t, rate(t, h, p.ID, u1.ID, "80"), "/politicians/1/")
	mustRedirect(t, rate(t, h, p.ID, u2.ID, "40"), "/politicians/1/")

	var got models.Politician
	db.First(&got, p.ID)
	if got.AverageAura != 60.0 {
		t.Fatalf("expected average 60.0 got %v", got.AverageAura)
	}

	// Re-rating updates the existing row instead of creating a second one.
	mustRedirect(t, rate(t, h, p.ID, u1.ID, "100"), "/politicians/1/")
	db.First(&got, p.ID)
	if got.AverageAura != 70.0 {
		t.Fatalf("expected average 70.0 got %v", got.AverageAura)
	}
	var pairCount, total int64
	db.Model(&models.Rating{}).Where("user_id = ? AND politician_id = ?", u1.ID, p.ID).Count(&pairCount)
	db.Model(&models.Rating{}).Count(&total)
	if pairCount != 1 {
		t.Fatalf("expected exactly 1 row for the pair, got %d", pairCount)
	}
	if total != 2 {
		t.Fatalf("expected 2 rating rows, got %d", total)
	}
	var updated models.Rating
	db.Where("user_id = ? AND politician_id = ?", u1.ID, p.ID).First(&updated)
	if updated.AuraScore != 100 {
		t.Fatalf("expected updated score 100 got %d", updated.AuraScore)
	}
}

func TestRateOutOfRangeRejected(t *testing.T) {
	db := setupTestDB(t)
	h := NewRatingHandler(db)
	p := createPolitician(t, db, "Candidate", true)
	u := createUser(t, db, "one@test", false)

	mustRedirect(t, rate(t, h, p.ID, u.ID, "1000"), "/politicians/1/")
	mustRedirect(t, rate(t, h, p.ID, u.ID, "-1000"), "/politicians/1/")
	mustRedirect(t, rate(t, h, p.ID, u.ID, "abc"), "/politicians/1/")

	var count int64
	db.Model(&models.Rating{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid score must cause no state change, got %d rows", count)
	}
	var got models.Politician
	db.First(&got, p.ID)
	if got.AverageAura != 0 {
		t.Fatalf("average must stay untouched, got %v", got.AverageAura)
	}
}

func TestRateBoundaryValues(t *testing.T) {
	db := setupTestDB(t)
	h := NewRatingHandler(db)
	p := createPolitician(t, db, "Candidate", true)
	u1 := createUser(t, db, "one@test", false)
	u2 := createUser(t, db, "two@test", false)

	mustRedirect(t, rate(t, h, p.ID, u1.ID, "-999"), "/politicians/1/")
	mustRedirect(t, rate(t, h, p.ID, u2.ID, "999"), "/politicians/1/")
	var got models.Politician
	db.First(&got, p.ID)
	if got.AverageAura != 0 {
		t.Fatalf("expected average 0 got %v", got.AverageAura)
	}
	var count int64
	db.Model(&models.Rating{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 rows got %d", count)
	}
}

func TestRatePendingPoliticianIs404(t *testing.T) {
	db := setupTestDB(t)
	h := NewRatingHandler(db)
	p := createPolitician(t, db, "Pending Candidate", false)
	u := createUser(t, db, "one@test", false)

	w := rate(t, h, p.ID, u.ID, "80")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Rating{}).Count(&count)
	if count != 0 {
		t.Fatalf("no rating should be written, got %d rows", count)
	}
}
