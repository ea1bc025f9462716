// Package objectstorage stores the S3-compatible image storage configuration.
package objectstorage

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/controller/setting"
)

const (
	// SettingKeyObjectStorage is the key used to store the object storage configuration in the database.
	SettingKeyObjectStorage = "object_storage"
)

type (
	// Settings represents the S3-compatible object storage configuration used
	// for image uploads. The upload client itself is external; only the
	// configuration lives here.
	Settings struct {
		EnableS3        bool   `form:"enable_s3"         json:"enableS3"`
		AccessKeyID     string `form:"access_key_id"     json:"accessKeyId"`
		SecretAccessKey string `form:"secret_access_key" json:"secretAccessKey"`
		Region          string `form:"region"            json:"region"`
		Bucket          string `form:"bucket"            json:"bucket"`
		Endpoint        string `form:"endpoint"          json:"endpoint"  validate:"omitempty,url"`
		PublicURL       string `form:"public_url"        json:"publicUrl" validate:"omitempty,url"`
		Path            string `form:"path"              json:"path"`
	}
)

// Load loads the object storage settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	row, err := setting.Get(db, SettingKeyObjectStorage)
	if err != nil {
		return err
	}

	return json.Unmarshal(row.Value, s)
}

// Save saves the object storage settings to the database.
func (s *Settings) Save(db *gorm.DB) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, SettingKeyObjectStorage, data)

	return err
}

// Redacted returns a copy safe to return to the admin UI, with the secret
// access key masked when set.
func (s Settings) Redacted() Settings {
	out := s
	if out.SecretAccessKey != "" {
		out.SecretAccessKey = "********"
	}

	return out
}
