package models

import (
	"time"
)

// TravelRecord holds the travel map dataset as one opaque JSON document.
// It is effectively a singleton: saving always upserts the one existing row.
type TravelRecord struct {
	ID uint64 `gorm:"primaryKey"`
	// Data is a JSON array of location entries, validated on save and
	// otherwise passed through untouched.
	Data string `gorm:"not null;default:'[]'"`
	// Visible toggles the travel map on the public site.
	Visible   bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
