package services

import (
	"fmt"

	"github.com/netaaura/netaaura/internal/models"
	"gorm.io/gorm"
)

// AverageAura returns the arithmetic mean of the given scores, or 0 when the
// slice is empty. Pure function so the aggregation rule is testable on its own.
func AverageAura(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

// RecomputeAverageAura recalculates a politician's average from all current
// ratings and persists it. Called deliberately after every successful rating
// write. When the politician has no ratings the stored value is left as is,
// matching the original behavior (only reachable transiently).
func RecomputeAverageAura(db *gorm.DB, politicianID uint) error {
	var scores []int
	if err := db.Model(&models.Rating{}).
		Where("politician_id = ?", politicianID).
		Pluck("aura_score", &scores).Error; err != nil {
		return fmt.Errorf("load aura scores: %w", err)
	}
	if len(scores) == 0 {
		return nil
	}
	avg := AverageAura(scores)
	if err := db.Model(&models.Politician{}).
		Where("id = ?", politicianID).
		Update("average_aura", avg).Error; err != nil {
		return fmt.Errorf("persist average aura: %w", err)
	}
	return nil
}
