// Package travel provides database operations for the travel map dataset.
package travel

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/models"
)

var (
	// ErrInvalidJSON is returned when the submitted dataset is not valid JSON.
	ErrInvalidJSON = errors.New("travel records payload is not valid JSON")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Records is the travel dataset together with its visibility flag.
type Records struct {
	Data    string `json:"data"`
	Visible bool   `json:"visible"`
}

// Load returns the latest travel record row. When no row exists yet, it
// returns an empty dataset with visibility off rather than an error.
func Load(db *gorm.DB) (Records, error) {
	if db == nil {
		return Records{}, ErrDBNil
	}

	var row models.TravelRecord
	result := db.Order("id DESC").First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Records{Data: "[]", Visible: false}, nil
		}
		return Records{}, result.Error
	}

	return Records{Data: row.Data, Visible: row.Visible}, nil
}

// Save upserts the singleton travel record row. The dataset must be valid
// JSON; it is otherwise stored verbatim.
func Save(db *gorm.DB, data string, visible bool) error {
	if db == nil {
		return ErrDBNil
	}

	if !json.Valid([]byte(data)) {
		return ErrInvalidJSON
	}

	var row models.TravelRecord
	result := db.First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = models.TravelRecord{Data: data, Visible: visible}
		return db.Create(&row).Error
	}
	if result.Error != nil {
		return result.Error
	}

	row.Data = data
	row.Visible = visible

	return db.Save(&row).Error
}
