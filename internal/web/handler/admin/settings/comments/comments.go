// Package comments implements the comment widget settings endpoints:
// the guarded admin read/write pair and the public config read served
// from the in-process mirror.
package comments

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/configstate"
	controller "github.com/chao-eng/mdblog/internal/db/controller/comments"
	"github.com/chao-eng/mdblog/internal/db/controller/setting"
	"github.com/chao-eng/mdblog/internal/web/handler"
	authmiddleware "github.com/chao-eng/mdblog/internal/web/middleware/auth"
)

const (
	// Path is the path of the admin comment settings endpoints.
	Path = "/api/admin/settings/comments"

	// PublicPath is the path of the public comment config endpoint.
	PublicPath = "/api/comments/config"
)

// Service is the comment settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the comment settings handler.
var Handler = Service{}

// Init initializes the comment settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	app.Get(Path, authmiddleware.Required, s.Get)
	app.Post(Path, authmiddleware.Required, s.Post)
	app.Get(PublicPath, s.Config)

	return nil
}

// Get returns the stored comment settings.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := settings.Load(s.db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		log.Error().Err(err).Msg("failed to load comment settings")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load settings")
	}

	return handler.OK(c, settings)
}

// Post replaces the comment settings and refreshes the in-process mirror.
func (s *Service) Post(c *fiber.Ctx) error {
	settings := &controller.Settings{}
	if err := c.BodyParser(settings); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(settings); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := settings.Save(s.db); err != nil {
		log.Error().Err(err).Msg("failed to save comment settings")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to save settings")
	}

	configstate.SetComments(*settings)

	return handler.OK(c, nil)
}

// Config returns the comment widget configuration for the public site.
func (s *Service) Config(c *fiber.Ctx) error {
	return handler.OK(c, configstate.Comments())
}
