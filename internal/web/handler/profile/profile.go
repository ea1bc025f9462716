// Package profile implements the account profile update endpoint.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/db/controller/user"
	"github.com/chao-eng/mdblog/internal/web/handler"
	authmiddleware "github.com/chao-eng/mdblog/internal/web/middleware/auth"
)

const (
	// Path is the base path of the profile endpoints.
	Path = "/api/user"
)

// Service is the profile handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the profile handler.
var Handler = Service{}

// Init initializes the profile handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Post("/profile", authmiddleware.Required, s.Update)
	})

	return nil
}

// profileRequest carries the profile fields. Absent fields stay untouched.
type profileRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

// Update applies a partial profile update to the authenticated account.
func (s *Service) Update(c *fiber.Ctx) error {
	req := new(profileRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	params := user.UpdateParams{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		Bio:    req.Bio,
	}

	if err := user.Update(s.db, authmiddleware.UserID(c), params); err != nil {
		switch {
		case errors.Is(err, user.ErrNoFieldsToUpdate):
			return handler.Fail(c, fiber.StatusBadRequest, "no fields to update")
		case errors.Is(err, user.ErrUserNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "user not found")
		default:
			log.Error().Err(err).Msg("failed to update profile")
			return handler.Fail(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}

	return handler.OK(c, nil)
}
