package middleware

import "github.com/gofiber/fiber/v2"

// statusOf resolves the status a request will finish with. Errors returned up
// the chain are rendered later by the app ErrorHandler, so the response does
// not carry their status yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
