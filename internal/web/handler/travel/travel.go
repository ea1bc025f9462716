// Package travel implements the travel map record endpoints.
package travel

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	travelctl "github.com/chao-eng/mdblog/internal/db/controller/travel"
	"github.com/chao-eng/mdblog/internal/web/handler"
	authmiddleware "github.com/chao-eng/mdblog/internal/web/middleware/auth"
)

const (
	// Path is the base path of the travel endpoints.
	Path = "/api/travel"
)

// Service is the travel handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the travel handler.
var Handler = Service{}

// Init initializes the travel handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get("/records", s.Get)
		router.Post("/records", authmiddleware.Required, s.Save)
	})

	return nil
}

type recordsView struct {
	Data    string `json:"data"`
	Visible bool   `json:"visible"`
}

// Get returns the travel records. When the map is hidden the payload is
// empty regardless of what is stored.
func (s *Service) Get(c *fiber.Ctx) error {
	records, err := travelctl.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load travel records")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load travel records")
	}

	view := recordsView{Data: records.Data, Visible: records.Visible}
	if !records.Visible {
		view.Data = "[]"
	}

	return handler.OK(c, view)
}

type saveRequest struct {
	Data    string `json:"data"`
	Visible bool   `json:"visible"`
}

// Save replaces the travel records.
func (s *Service) Save(c *fiber.Ctx) error {
	req := new(saveRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := travelctl.Save(s.db, req.Data, req.Visible); err != nil {
		if errors.Is(err, travelctl.ErrInvalidJSON) {
			return handler.Fail(c, fiber.StatusBadRequest, "records must be valid JSON")
		}

		log.Error().Err(err).Msg("failed to save travel records")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to save travel records")
	}

	return handler.OK(c, nil)
}
