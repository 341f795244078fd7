package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/apperr"
	"cmsapi/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindPolicyViolation:
		return fiber.StatusBadRequest
	case apperr.KindUnsupportedMedia:
		return fiber.StatusUnsupportedMediaType
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindAuthMismatch:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses. Typed errors carry their own safe message; anything untyped is
// reported as an opaque internal error.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			status := statusForKind(ae.Kind)
			message := ae.Message
			if status == fiber.StatusInternalServerError {
				message = "something went wrong"
			}
			return writeError(c, status, ae.Kind.String(), message)
		}

		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "insufficient permissions")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
