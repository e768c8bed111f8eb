package auth

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	apperrors "github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

func newGuardedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		}
		return fiber.DefaultErrorHandler(c, err)
	}})
	mw := NewAuthMiddleware(tm)
	app.Get("/me", mw.Handle, RequireAnyRole(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	app.Get("/admin", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/open", RequireAnyRole(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	app := newGuardedApp(tm)
	userToken, _, err := tm.GenerateToken(domain.UserProfile{Username: "alice"})
	require.NoError(t, err)
	adminToken, _, err := tm.GenerateToken(domain.UserProfile{Username: "root", IsAdmin: true})
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/me", "", fiber.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic " + userToken, fiber.StatusUnauthorized},
		{"garbage token", "/me", "Bearer nope", fiber.StatusUnauthorized},
		{"user", "/me", "Bearer " + userToken, fiber.StatusOK},
		{"user on admin route", "/admin", "Bearer " + userToken, fiber.StatusForbidden},
		{"admin", "/admin", "bearer " + adminToken, fiber.StatusNoContent},
		{"no principal", "/open", "", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
