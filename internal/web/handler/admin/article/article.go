// Package article implements the administrative article endpoints: the
// fs-merged listing, save, delete, raw-content read and index rebuild.
package article

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	enginepkg "github.com/chao-eng/mdblog/internal/article"
	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/web/handler"
	authmiddleware "github.com/chao-eng/mdblog/internal/web/middleware/auth"
)

const (
	// Path is the base path of the admin article endpoints.
	Path = "/api/admin"
)

// Service is the admin article handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *enginepkg.Engine
}

// Handler is the admin article handler.
var Handler = Service{}

// Init initializes the admin article handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = enginepkg.New(db, cfg.Content.BasePath)

	app.Route(Path, func(router fiber.Router) {
		router.Use(authmiddleware.Required)

		router.Get("/articles", s.List)
		router.Put("/article", s.Save)
		router.Delete("/article", s.Delete)
		router.Post("/article/content", s.Content)
		router.Post("/article/rebuild", s.Rebuild)
	})

	return nil
}

// List returns every article directory merged with its index row.
func (s *Service) List(c *fiber.Ctx) error {
	list, err := s.engine.ListAdmin()
	if err != nil {
		log.Error().Err(err).Msg("failed to list articles")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to list articles")
	}

	return handler.OK(c, list)
}

type saveRequest struct {
	// Path is the slug the article is saved under.
	Path string `json:"path"`
	// OriginalPath, when different from Path, renames the article.
	OriginalPath string `json:"originalPath"`
	// Content is the raw document: front matter block plus Markdown body.
	Content string `json:"content"`
}

// Save writes the raw document to the article tree and reconciles the
// index row, handling a rename when the slug changed.
func (s *Service) Save(c *fiber.Ctx) error {
	req := new(saveRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := authmiddleware.UserID(c)

	err := s.engine.SaveContent(req.Path, req.OriginalPath, []byte(req.Content), userID)
	if err != nil {
		switch {
		case errors.Is(err, enginepkg.ErrSlugEmpty),
			errors.Is(err, enginepkg.ErrPathOutsideBase),
			errors.Is(err, enginepkg.ErrMissingRequiredFields):
			return handler.Fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, enginepkg.ErrNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "original article not found")
		case errors.Is(err, enginepkg.ErrNoChanges):
			return handler.Fail(c, fiber.StatusBadRequest, "nothing to update")
		default:
			log.Error().Err(err).Str("path", req.Path).Msg("failed to save article")
			return handler.Fail(c, fiber.StatusInternalServerError, "failed to save article")
		}
	}

	return handler.OK(c, nil)
}

type deleteRequest struct {
	Path string `json:"path"`
}

// Delete removes the index row and the slug directory. A directory that
// was never indexed can still be deleted.
func (s *Service) Delete(c *fiber.Ctx) error {
	req := new(deleteRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Path == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "path must not be empty")
	}

	if err := s.engine.DeleteByPath(req.Path); err != nil && !errors.Is(err, enginepkg.ErrNotFound) {
		log.Error().Err(err).Str("path", req.Path).Msg("failed to delete index row")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete article")
	}

	if err := s.engine.DeleteTree(req.Path); err != nil && !errors.Is(err, enginepkg.ErrNotFound) {
		if errors.Is(err, enginepkg.ErrPathOutsideBase) {
			return handler.Fail(c, fiber.StatusBadRequest, err.Error())
		}

		log.Error().Err(err).Str("path", req.Path).Msg("failed to delete article directory")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to delete article")
	}

	return handler.OK(c, nil)
}

type contentRequest struct {
	Path string `json:"path"`
}

type contentResponse struct {
	FrontMatter enginepkg.FrontMatter `json:"frontMatter"`
	Content     string                `json:"content"`
}

// Content returns the parsed document of one article straight from the
// filesystem, for the editor.
func (s *Service) Content(c *fiber.Ctx) error {
	req := new(contentRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	fm, body, err := s.engine.Content(req.Path)
	if err != nil {
		switch {
		case errors.Is(err, enginepkg.ErrNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "article not found")
		case errors.Is(err, enginepkg.ErrPathOutsideBase), errors.Is(err, enginepkg.ErrSlugEmpty):
			return handler.Fail(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("path", req.Path).Msg("failed to read article")
			return handler.Fail(c, fiber.StatusInternalServerError, "failed to read article")
		}
	}

	return handler.OK(c, contentResponse{FrontMatter: fm, Content: body})
}

// Rebuild wipes the index and re-derives it from the article tree.
func (s *Service) Rebuild(c *fiber.Ctx) error {
	count, err := s.engine.Rebuild(authmiddleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to rebuild index")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to rebuild index")
	}

	return handler.OK(c, fiber.Map{"indexed": count})
}
