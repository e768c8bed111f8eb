package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/service"
)

// AuthHandler exposes login and profile endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	leaves        *service.LeaveService
	notifications *service.NotificationService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, leaves *service.LeaveService, notifications *service.NotificationService) *AuthHandler {
	return &AuthHandler{auth: authService, leaves: leaves, notifications: notifications}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	}})
}

// Me GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	return c.JSON(fiber.Map{"data": dto.MeResponse{
		User:            *user,
		UnreadCount:     h.notifications.UnreadCount(ctx, user.Username),
		IsHelpdeskStaff: h.notifications.IsHelpdeskStaff(ctx, user.Username),
	}})
}

// Managers GET /api/managers.
func (h *AuthHandler) Managers(c *fiber.Ctx) error {
	managers, err := h.leaves.Managers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": managers})
}
