package models

import (
	"time"

	"gorm.io/datatypes"
)

// Politician is the root entity of the site. Submissions start unapproved and
// stay hidden from the public listing until a staff member approves them.
type Politician struct {
	ID          uint              `gorm:"primaryKey"`
	Name        string            `gorm:"size:255;not null"`
	Party       string            `gorm:"size:255"`
	Position    string            `gorm:"size:255"`
	Biography   string            `gorm:"type:text"`
	SocialLinks datatypes.JSONMap // {"twitter": "https://..."}
	Tags        string            `gorm:"size:255"`
	Image       string            `gorm:"size:255;not null"` // stored filename under the upload dir
	AverageAura float64           `gorm:"not null;default:0"`
	IsApproved  bool              `gorm:"not null;default:false;index"`
	CreatedByID *uint             `gorm:"index"`
	CreatedBy   *User             `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Ratings  []Rating  `gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE"`
}
