package models

import "time"

// Rating is one user's aura score for one politician. The composite unique
// index makes the rate action an upsert at the storage layer, so two
// concurrent submissions from the same user cannot produce duplicate rows.
type Rating struct {
	ID           uint  `gorm:"primaryKey"`
	PoliticianID uint  `gorm:"not null;index:idx_user_politician,unique,priority:2"`
	UserID       *uint `gorm:"index:idx_user_politician,unique,priority:1"`
	User         *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	AuraScore    int   `gorm:"not null"` // [-999, 999]

	// Legacy columns from an earlier form revision; persisted but never
	// written by the current handlers.
	Integrity     uint8  `gorm:"not null;default:0"`
	Effectiveness uint8  `gorm:"not null;default:0"`
	Popularity    uint8  `gorm:"not null;default:0"`
	Comment       string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuraScoreMin and AuraScoreMax bound the accepted rating range.
const (
	AuraScoreMin = -999
	AuraScoreMax = 999
)
