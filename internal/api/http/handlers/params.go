package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/auth"
	"github.com/Behnamfe76/officedesk/internal/domain"
	apperrors "github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

func currentUser(c *fiber.Ctx) (*domain.UserProfile, error) {
	user := auth.CurrentUser(c)
	if user == nil {
		return nil, apperrors.NewUnauthorized("login required")
	}
	return user, nil
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"field": name, "input": raw})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
