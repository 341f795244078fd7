package handler

import "github.com/gofiber/fiber/v2"

// successPayload is the envelope wrapping every successful response.
type successPayload struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func writeSuccess(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(successPayload{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}
