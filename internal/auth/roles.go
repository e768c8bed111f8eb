package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// RequireAdmin ensures the caller belongs to the admins group.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if !principal.User.IsAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("login required")
		}
		return c.Next()
	}
}
