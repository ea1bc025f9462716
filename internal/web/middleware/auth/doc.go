// Package auth provides the authentication middleware for the JSON API.
//
// The middleware validates the login session referenced by the session
// cookie (or a bearer token) and places the authenticated identity into
// fiber.Locals for handlers to read. Requests without a valid session
// receive a 401 JSON response.
//
// Usage:
//
//	router.Get("/articles", auth.Required, s.List)
//
// Sessions are managed by the session package.
package auth
