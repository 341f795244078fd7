package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"cmsapi/internal/apperr"
	"cmsapi/internal/model"
)

const (
	// UserIDLocalKey is the context locals key holding the authenticated
	// user's identifier.
	UserIDLocalKey = "user_id"
	// UserRoleLocalKey is the context locals key holding the authenticated
	// user's role.
	UserRoleLocalKey = "user_role"
)

// RequireAuth verifies the Bearer token and, when roles are given, requires
// the token's role to be one of them. The authenticated identity is stored in
// context locals for downstream handlers.
func RequireAuth(secret string, roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			return apperr.New(apperr.KindAuthMismatch, "missing bearer token")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return apperr.New(apperr.KindAuthMismatch, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperr.New(apperr.KindAuthMismatch, "invalid token claims")
		}
		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)

		if len(roles) > 0 && !roleAllowed(model.Role(role), roles) {
			return fiber.ErrForbidden
		}

		c.Locals(UserIDLocalKey, sub)
		c.Locals(UserRoleLocalKey, role)
		return c.Next()
	}
}

func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
