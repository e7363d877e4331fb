package models

import "time"

// User represents an authenticated account. Politicians and ratings keep a
// nullable reference so deleting a user leaves their submissions in place;
// comments go with the user.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"` // bcrypt hash, never rendered
	Username  string `gorm:"size:150"`
	IsStaff   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
