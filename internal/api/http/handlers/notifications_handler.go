package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/service"
)

const defaultInboxLimit = 50

// NotificationsHandler serves the caller's inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List GET /api/notifications?limit=.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	limit := parseIntQuery(c, "limit", defaultInboxLimit)
	if limit <= 0 || limit > 200 {
		limit = defaultInboxLimit
	}
	list, err := h.notifications.List(c.UserContext(), user, limit)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		items = append(items, notificationResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead POST /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), user, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllRead POST /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkAllRead(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "updated": n})
}

// UnreadCount GET /api/notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": h.notifications.UnreadCount(c.UserContext(), user.Username)})
}
