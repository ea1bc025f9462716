package handler

import "github.com/gofiber/fiber/v2"

// Result is the JSON envelope every API endpoint responds with.
type Result struct {
	Success bool        `json:"success"`
	Err     string      `json:"err"`
	Data    interface{} `json:"data"`
}

// OK sends a successful Result with the given payload.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Result{Success: true, Data: data})
}

// Fail sends a failed Result with the given status code and message.
func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Result{Success: false, Err: msg})
}
