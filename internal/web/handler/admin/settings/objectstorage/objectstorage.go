// Package objectstorage implements the guarded object storage settings
// endpoints. The secret access key is masked on reads; a masked value
// submitted back keeps the stored secret.
package objectstorage

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	controller "github.com/chao-eng/mdblog/internal/db/controller/objectstorage"
	"github.com/chao-eng/mdblog/internal/db/controller/setting"
	"github.com/chao-eng/mdblog/internal/web/handler"
	authmiddleware "github.com/chao-eng/mdblog/internal/web/middleware/auth"
)

const (
	// Path is the path of the admin object storage settings endpoints.
	Path = "/api/admin/settings/objectstorage"

	mask = "********"
)

// Service is the object storage settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the object storage settings handler.
var Handler = Service{}

// Init initializes the object storage settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	app.Get(Path, authmiddleware.Required, s.Get)
	app.Post(Path, authmiddleware.Required, s.Post)

	return nil
}

// Get returns the stored object storage settings with the secret masked.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := settings.Load(s.db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		log.Error().Err(err).Msg("failed to load object storage settings")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load settings")
	}

	return handler.OK(c, settings.Redacted())
}

// Post replaces the object storage settings.
func (s *Service) Post(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := c.BodyParser(settings); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(settings); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	// an untouched masked secret means "keep the stored one"
	if settings.SecretAccessKey == mask {
		stored := &controller.Settings{}
		if err := stored.Load(s.db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
			log.Error().Err(err).Msg("failed to load object storage settings")
			return handler.Fail(c, fiber.StatusInternalServerError, "failed to save settings")
		}

		settings.SecretAccessKey = stored.SecretAccessKey
	}

	if err := settings.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save object storage settings")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to save settings")
	}

	return handler.OK(c, nil)
}
