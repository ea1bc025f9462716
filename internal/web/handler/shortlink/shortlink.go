// Package shortlink resolves short public identifiers to articles.
package shortlink

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	enginepkg "github.com/chao-eng/mdblog/internal/article"
	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/web/handler"
)

const (
	// Path is the base path of the short link endpoint.
	Path = "/api/s"
)

// Service is the short link handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *enginepkg.Engine
}

// Handler is the short link handler.
var Handler = Service{}

// Init initializes the short link handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = enginepkg.New(db, cfg.Content.BasePath)

	app.Route(Path, func(router fiber.Router) {
		router.Get("/:shortId", s.Resolve)
	})

	return nil
}

// Resolve maps a short id back to its article. Unpublished articles are
// not resolvable publicly.
func (s *Service) Resolve(c *fiber.Ctx) error {
	art, err := s.engine.ByShortID(c.Params("shortId"))
	if err != nil {
		if errors.Is(err, enginepkg.ErrNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "not found")
		}

		log.Error().Err(err).Msg("failed to resolve short id")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to resolve short id")
	}

	if !art.Published {
		return handler.Fail(c, fiber.StatusNotFound, "not found")
	}

	return handler.OK(c, art)
}
