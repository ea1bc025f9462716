package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chao-eng/mdblog/internal/web/handler"
	"github.com/chao-eng/mdblog/internal/web/session"
)

const (
	// LocalUserID is the fiber.Locals key holding the authenticated user id.
	LocalUserID = "userID"

	// LocalUsername is the fiber.Locals key holding the authenticated username.
	LocalUsername = "username"
)

// Required is a Fiber middleware that rejects requests without a valid
// login session. The session id is taken from the session cookie or,
// failing that, from a bearer token.
func Required(c *fiber.Ctx) error {
	sessionID := SessionID(c)
	if sessionID == "" {
		return handler.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil || sessData.UserID == 0 {
		return handler.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(LocalUserID, sessData.UserID)
	c.Locals(LocalUsername, sessData.Username)

	return c.Next()
}

// SessionID extracts the session id from the request, preferring the
// cookie over the Authorization header.
func SessionID(c *fiber.Ctx) string {
	if cookie := c.Cookies(handler.SessionCookieName); cookie != "" {
		return cookie
	}

	const bearerPrefix = "Bearer "

	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}

	return ""
}

// UserID returns the authenticated user id set by Required, or zero.
func UserID(c *fiber.Ctx) uint64 {
	id, _ := c.Locals(LocalUserID).(uint64)
	return id
}
