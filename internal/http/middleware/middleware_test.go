package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmsapi/internal/model"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(RequestID())
	app.Use(Logger(log))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	require.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency_ms"])
}

func signToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "64f000000000000000000001",
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	const secret = "test-secret"

	newApp := func(roles ...model.Role) *fiber.App {
		app := fiber.New(fiber.Config{
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				if e, ok := err.(*fiber.Error); ok {
					return c.SendStatus(e.Code)
				}
				return c.SendStatus(fiber.StatusUnauthorized)
			},
		})
		app.Get("/secure", RequireAuth(secret, roles...), func(c *fiber.Ctx) error {
			return c.SendString(c.Locals(UserIDLocalKey).(string))
		})
		return app
	}

	t.Run("rejects missing token", func(t *testing.T) {
		app := newApp()
		resp, _ := app.Test(httptest.NewRequest("GET", "/secure", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		app := newApp()
		req := httptest.NewRequest("GET", "/secure", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, secret, "admin", -time.Hour))
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		app := newApp()
		req := httptest.NewRequest("GET", "/secure", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "other", "admin", time.Hour))
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects insufficient role", func(t *testing.T) {
		app := newApp(model.RoleAdmin)
		req := httptest.NewRequest("GET", "/secure", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, secret, "user", time.Hour))
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("accepts valid token and exposes identity", func(t *testing.T) {
		app := newApp(model.RoleAdmin)
		req := httptest.NewRequest("GET", "/secure", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, secret, "admin", time.Hour))
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "64f000000000000000000001", string(body))
	})
}
