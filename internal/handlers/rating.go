package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/middleware"
	"github.com/netaaura/netaaura/internal/models"
	"github.com/netaaura/netaaura/internal/services"
	"github.com/netaaura/netaaura/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingHandler struct {
	DB *gorm.DB
}

func NewRatingHandler(db *gorm.DB) *RatingHandler { return &RatingHandler{DB: db} }

// Rate upserts the requesting user's rating for an approved politician and
// recomputes the politician's average. The route is wrapped in RequireAuth.
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var politician models.Politician
	err := h.DB.Where("id = ? AND is_approved = ?", id, true).First(&politician).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to load politician", http.StatusInternalServerError)
		return
	}
	detailURL := "/politicians/" + strconv.FormatUint(uint64(politician.ID), 10) + "/"

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	score, convErr := strconv.Atoi(r.FormValue("aura_score"))
	v := validation.Violations{}
	if convErr != nil {
		v["aura_score"] = "must_be_integer"
	} else {
		validation.IntRange("aura_score", score, models.AuraScoreMin, models.AuraScoreMax, v)
	}
	if !v.Empty() {
		middleware.Flash(w, "Invalid rating.")
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	uid, _ := auth.UserIDFromContext(r.Context())
	rating := models.Rating{PoliticianID: politician.ID, UserID: &uid, AuraScore: score}
	// The unique (user_id, politician_id) index turns concurrent submissions
	// into a single row; losers update instead of duplicating.
	err = h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "politician_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"aura_score", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		http.Error(w, "could not save rating", http.StatusInternalServerError)
		return
	}
	if err := services.RecomputeAverageAura(h.DB, politician.ID); err != nil {
		http.Error(w, "could not update average", http.StatusInternalServerError)
		return
	}
	middleware.Flash(w, "Your rating has been saved!")
	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}
