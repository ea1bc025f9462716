// Package blog implements the public read-only article endpoints.
package blog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	enginepkg "github.com/chao-eng/mdblog/internal/article"
	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/markdown"
	"github.com/chao-eng/mdblog/internal/web/handler"
)

const (
	// Path is the base path of the public blog endpoints.
	Path = "/api/blogs"

	recentPageSize = 3
	stickyPageSize = 6
)

// Service is the public blog handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *enginepkg.Engine
}

// Handler is the public blog handler.
var Handler = Service{}

// Init initializes the public blog handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = enginepkg.New(db, cfg.Content.BasePath)

	app.Route(Path, func(router fiber.Router) {
		router.Get("/all", s.All)
		router.Get("/recent", s.Recent)
		router.Get("/sticky", s.Sticky)
		router.Get("/tags", s.Tags)
		router.Post("/content", s.Content)
	})

	return nil
}

// All returns a page of published articles, optionally filtered.
func (s *Service) All(c *fiber.Ctx) error {
	opts := enginepkg.QueryOptions{
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("pageSize", 10),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Search:    c.Query("search"),
		Tag:       c.Query("tag"),
	}

	page, err := s.engine.QueryPublished(opts)
	if err != nil {
		log.Error().Err(err).Msg("failed to query articles")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to query articles")
	}

	return handler.OK(c, page)
}

// Recent returns the newest non-sticky published articles.
func (s *Service) Recent(c *fiber.Ctx) error {
	sticky := false
	page, err := s.engine.QueryPublished(enginepkg.QueryOptions{
		Page:     1,
		PageSize: recentPageSize,
		IsSticky: &sticky,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to query recent articles")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to query articles")
	}

	return handler.OK(c, page.List)
}

// Sticky returns the newest sticky published articles.
func (s *Service) Sticky(c *fiber.Ctx) error {
	sticky := true
	page, err := s.engine.QueryPublished(enginepkg.QueryOptions{
		Page:     1,
		PageSize: stickyPageSize,
		IsSticky: &sticky,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to query sticky articles")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to query articles")
	}

	return handler.OK(c, page.List)
}

// Tags returns every tag of the published articles with its frequency.
func (s *Service) Tags(c *fiber.Ctx) error {
	tags, err := s.engine.TagsWithCount()
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate tags")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to aggregate tags")
	}

	return handler.OK(c, tags)
}

type contentRequest struct {
	Path string `json:"path"`
}

type contentResponse struct {
	Article   enginepkg.Article    `json:"article"`
	HTML      string               `json:"html"`
	Author    enginepkg.AuthorInfo `json:"author"`
	Neighbors enginepkg.Neighbors  `json:"neighbors"`
}

// Content returns one published article rendered to sanitized HTML,
// together with its author and its (date, path) neighbors.
func (s *Service) Content(c *fiber.Ctx) error {
	req := new(contentRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	art, err := s.engine.ByPath(req.Path)
	if err != nil {
		if errors.Is(err, enginepkg.ErrNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "article not found")
		}

		log.Error().Err(err).Str("path", req.Path).Msg("failed to load article")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load article")
	}

	if !art.Published {
		return handler.Fail(c, fiber.StatusNotFound, "article not found")
	}

	_, body, err := s.engine.Content(req.Path)
	if err != nil {
		log.Error().Err(err).Str("path", req.Path).Msg("failed to read article body")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to load article")
	}

	html, err := markdown.Render(body)
	if err != nil {
		log.Error().Err(err).Str("path", req.Path).Msg("failed to render article body")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to render article")
	}

	neighbors, err := s.engine.Adjacent(art.Date, art.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", req.Path).Msg("failed to resolve neighbors")
		neighbors = &enginepkg.Neighbors{}
	}

	return handler.OK(c, contentResponse{
		Article:   *art,
		HTML:      html,
		Author:    s.engine.Author(req.Path),
		Neighbors: *neighbors,
	})
}
