package handler

import (
	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/apperr"
	"cmsapi/internal/http/middleware"
	"cmsapi/internal/service"
)

// AuthHandler exposes login and credential rotation.
type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (r loginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Email != "":
		return r.Email
	default:
		return r.Username
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "malformed request body", err)
	}
	id := body.identifier()
	if id == "" || body.Password == "" {
		return apperr.New(apperr.KindValidation, "identifier and password are required")
	}
	res, err := h.svc.Login(c.UserContext(), id, body.Password)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "login successful", res)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword rotates the authenticated user's credential.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var body changePasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return apperr.Wrap(apperr.KindValidation, "malformed request body", err)
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		return apperr.New(apperr.KindValidation, "currentPassword and newPassword are required")
	}

	userID, _ := c.Locals(middleware.UserIDLocalKey).(string)
	if userID == "" {
		return apperr.New(apperr.KindAuthMismatch, "missing authenticated user")
	}

	if err := h.svc.ChangePassword(c.UserContext(), userID, body.CurrentPassword, body.NewPassword); err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "password changed", nil)
}
