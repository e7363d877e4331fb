package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/netaaura/netaaura/internal/auth"
	"github.com/netaaura/netaaura/internal/middleware"
	"github.com/netaaura/netaaura/internal/models"
	"github.com/netaaura/netaaura/internal/services"
	"gorm.io/gorm"
)

type ApproveHandler struct {
	DB *gorm.DB
}

func NewApproveHandler(db *gorm.DB) *ApproveHandler { return &ApproveHandler{DB: db} }

// pendingEntry annotates a pending politician for the approve list: the mean
// of its ratings so far and the reviewing staff member's own score, if any.
type pendingEntry struct {
	models.Politician
	Average   string // two decimals, or "N/A" without ratings
	AuraGiven string // the staff actor's own score, or "—"
}

// List shows all pending politicians. Staff only; the route is gated on the
// approve action.
func (h *ApproveHandler) List(w http.ResponseWriter, r *http.Request) {
	var pending []models.Politician
	if err := h.DB.Where("is_approved = ?", false).Order("created_at asc").Find(&pending).Error; err != nil {
		http.Error(w, "failed to list politicians", http.StatusInternalServerError)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	entries := make([]pendingEntry, 0, len(pending))
	for _, p := range pending {
		entry := pendingEntry{Politician: p, Average: "N/A", AuraGiven: "—"}
		var scores []int
		if err := h.DB.Model(&models.Rating{}).Where("politician_id = ?", p.ID).Pluck("aura_score", &scores).Error; err == nil && len(scores) > 0 {
			entry.Average = strconv.FormatFloat(services.AverageAura(scores), 'f', 2, 64)
		}
		var own models.Rating
		if err := h.DB.Where("user_id = ? AND politician_id = ?", uid, p.ID).First(&own).Error; err == nil {
			entry.AuraGiven = strconv.Itoa(own.AuraScore)
		}
		entries = append(entries, entry)
	}
	renderTemplate(w, r, "approve_politicians", map[string]any{"Politicians": entries})
}

// Approve transitions one pending politician to approved. A politician that
// does not exist or is already approved is a 404. Staff only; the route is
// gated on the approve action.
func (h *ApproveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var politician models.Politician
	err := h.DB.Where("id = ? AND is_approved = ?", id, false).First(&politician).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to load politician", http.StatusInternalServerError)
		return
	}
	if err := h.DB.Model(&politician).Update("is_approved", true).Error; err != nil {
		http.Error(w, "could not approve politician", http.StatusInternalServerError)
		return
	}
	middleware.Flash(w, politician.Name+" approved!")
	http.Redirect(w, r, "/approve/", http.StatusSeeOther)
}
