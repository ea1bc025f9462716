// Package models contains database model definitions.
package models

// Setting represents a configuration setting stored in the database.
// Typed configuration sections (comments, analytics, object storage) are
// JSON-encoded into the Value blob under a well-known Name.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}
