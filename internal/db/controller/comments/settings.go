// Package comments stores the comment widget configuration.
package comments

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/controller/setting"
)

const (
	// SettingKeyComments is the key used to store the comment configuration in the database.
	SettingKeyComments = "comments"
)

type (
	// Settings represents the giscus-style comment widget configuration.
	Settings struct {
		EnableComments bool   `form:"enable_comments" json:"enableComments"`
		Repo           string `form:"repo"            json:"repo"`
		RepoID         string `form:"repo_id"         json:"repoId"`
		Category       string `form:"category"        json:"category"`
		CategoryID     string `form:"category_id"     json:"categoryId"`
	}
)

// Load loads the comment settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	row, err := setting.Get(db, SettingKeyComments)
	if err != nil {
		return err
	}

	return json.Unmarshal(row.Value, s)
}

// Save saves the comment settings to the database.
func (s *Settings) Save(db *gorm.DB) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, SettingKeyComments, data)

	return err
}
