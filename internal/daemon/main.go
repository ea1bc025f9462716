// Package daemon assembles the application: database, migrations, seed
// data, session storage, settings mirror and the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	sessionsqlite "github.com/gofiber/storage/sqlite3/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/configstate"
	"github.com/chao-eng/mdblog/internal/db/dsn"
	"github.com/chao-eng/mdblog/internal/db/models"
	"github.com/chao-eng/mdblog/internal/logger"
	"github.com/chao-eng/mdblog/internal/web"
	"github.com/chao-eng/mdblog/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
	cfg        *config.Config
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}

	db, err := gorm.Open(sqlite.Open(dsn.Create(cfg)), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.TravelRecord{},
		&models.Setting{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	if err = configstate.Load(db); err != nil {
		log.Fatal().Err(err).Msg("failed to load settings mirror")
	}

	// Initialize fiber session store
	sessionStorage := sessionsqlite.New(sessionsqlite.Config{
		Database: cfg.DB.Path,
		Table:    "sessions",
	})

	session.Init(sessionStorage)

	return &Daemon{
		webService: *web.New(cfg, db),
		cfg:        cfg,
	}
}
