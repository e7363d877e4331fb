package models

import "time"

// Comment is a free-text remark on a politician's detail page. Comments are
// append-only; no exposed operation edits or deletes one directly.
type Comment struct {
	ID           uint   `gorm:"primaryKey"`
	PoliticianID uint   `gorm:"not null;index"`
	UserID       uint   `gorm:"not null;index"`
	User         User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Text         string `gorm:"type:text;not null"`
	CreatedAt    time.Time
}
