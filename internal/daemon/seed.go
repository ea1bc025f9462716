package daemon

import (
	"gorm.io/gorm"

	"github.com/rs/zerolog/log"

	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/db/controller/user"
	"github.com/chao-eng/mdblog/internal/db/models"
)

const (
	seedUsername = "admin"
	seedPassword = "admin123"
)

func seed(cfg *config.Config, db *gorm.DB) {
	// Seed the admin account if the user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		admin := &models.User{
			Name:     cfg.Title,
			Username: seedUsername,
		}

		if err := user.Create(db, admin, seedPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}

		log.Warn().
			Str("username", seedUsername).
			Msg("seeded default admin account, change the password after first login")
	}
}
