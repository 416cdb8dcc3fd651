package handlers

import (
	"errors"

	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Response is the uniform envelope every endpoint replies with.
type Response struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// respond sends a success envelope.
func respond(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return c.Status(statusCode).JSON(Response{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// respondError maps a service error to its HTTP status and sends an error
// envelope. The service's message string is surfaced as-is; clients display
// it directly.
func respondError(c *fiber.Ctx, err error) error {
	statusCode := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		statusCode = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		statusCode = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		statusCode = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		statusCode = fiber.StatusBadRequest
	}
	return c.Status(statusCode).JSON(Response{
		Success:    false,
		StatusCode: statusCode,
		Message:    err.Error(),
		Data:       nil,
	})
}

// respondBadRequest sends a 400 envelope with an explicit message.
func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success:    false,
		StatusCode: fiber.StatusBadRequest,
		Message:    message,
		Data:       nil,
	})
}

// userID extracts the authenticated user's ID stored by the JWT middleware.
func userID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
