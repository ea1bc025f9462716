// Package auth implements the login, logout and account endpoints.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/config"
	"github.com/chao-eng/mdblog/internal/db/controller/user"
	"github.com/chao-eng/mdblog/internal/db/models"
	"github.com/chao-eng/mdblog/internal/web/handler"
	authmiddleware "github.com/chao-eng/mdblog/internal/web/middleware/auth"
	"github.com/chao-eng/mdblog/internal/web/session"
)

const (
	// Path is the base path of the auth endpoints.
	Path = "/api/auth"
)

// Service is the auth handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the auth handler.
var Handler = Service{}

// Init initializes the auth handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Post("/login", s.Login)
		router.Post("/logout", s.Logout)
		router.Get("/user", authmiddleware.Required, s.User)
		router.Post("/repassword", authmiddleware.Required, s.Repassword)
	})

	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userView is the account payload returned to the client. The password
// hash never leaves the server.
type userView struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

// Login verifies the credentials and establishes a session.
func (s *Service) Login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	dbUser, err := user.ByUsername(s.db, req.Username)
	if err != nil {
		return handler.Fail(c, fiber.StatusUnauthorized, "invalid username or password")
	}

	if !dbUser.VerifyPassword(req.Password) {
		return handler.Fail(c, fiber.StatusUnauthorized, "invalid username or password")
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	userSession := &session.Data{
		UserID:   dbUser.ID,
		Username: dbUser.Username,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	cookieSettings := &fiber.Cookie{
		Name:     handler.SessionCookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return handler.OK(c, viewOf(dbUser))
}

// Logout clears the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := authmiddleware.SessionID(c); sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     handler.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return handler.OK(c, nil)
}

// User returns the authenticated account.
func (s *Service) User(c *fiber.Ctx) error {
	dbUser, err := user.ByID(s.db, authmiddleware.UserID(c))
	if err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "user not found")
	}

	return handler.OK(c, viewOf(dbUser))
}

type repasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Repassword changes the password of the authenticated account after
// verifying the current one.
func (s *Service) Repassword(c *fiber.Ctx) error {
	req := new(repasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.NewPassword == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "new password must not be empty")
	}

	dbUser, err := user.ByID(s.db, authmiddleware.UserID(c))
	if err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "user not found")
	}

	if !dbUser.VerifyPassword(req.OldPassword) {
		return handler.Fail(c, fiber.StatusUnauthorized, "invalid password")
	}

	if err := user.Update(s.db, dbUser.ID, user.UpdateParams{Password: &req.NewPassword}); err != nil {
		log.Error().Err(err).Msg("failed to update password")
		return handler.Fail(c, fiber.StatusInternalServerError, "failed to update password")
	}

	return handler.OK(c, nil)
}

func viewOf(u *models.User) userView {
	return userView{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
	}
}
