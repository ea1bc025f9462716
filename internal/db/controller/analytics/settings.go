// Package analytics stores the umami analytics configuration.
package analytics

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/controller/setting"
)

const (
	// SettingKeyAnalytics is the key used to store the analytics configuration in the database.
	SettingKeyAnalytics = "analytics"
)

type (
	// Settings represents the umami analytics embed configuration.
	Settings struct {
		EnableUmami bool   `form:"enable_umami" json:"enableUmami"`
		ScriptURL   string `form:"script_url"   json:"scriptUrl"  validate:"omitempty,url"`
		WebsiteID   string `form:"website_id"   json:"websiteId"`
		ShareURL    string `form:"share_url"    json:"shareUrl"   validate:"omitempty,url"`
	}
)

// Load loads the analytics settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	row, err := setting.Get(db, SettingKeyAnalytics)
	if err != nil {
		return err
	}

	return json.Unmarshal(row.Value, s)
}

// Save saves the analytics settings to the database.
func (s *Settings) Save(db *gorm.DB) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, SettingKeyAnalytics, data)

	return err
}
