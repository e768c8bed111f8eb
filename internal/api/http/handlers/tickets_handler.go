package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/service"
)

// TicketsHandler handles help-desk ticket endpoints for requesters and staff.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.Create(c.UserContext(), user, service.TicketInput{
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		TitleAr:       req.TitleAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Priority:      req.Priority,
		Language:      req.ActiveLanguage,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListMine GET /api/tickets?status=.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.tickets.ListMine(c.UserContext(), user, c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(list)})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.tickets.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// Reply POST /api/tickets/:id/messages.
func (h *TicketsHandler) Reply(c *fiber.Ctx) error {
	return h.reply(c, false)
}

// StaffReply POST /api/staff/tickets/:id/messages.
func (h *TicketsHandler) StaffReply(c *fiber.Ctx) error {
	return h.reply(c, true)
}

func (h *TicketsHandler) reply(c *fiber.Ctx, asStaff bool) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := h.tickets.Reply(c.UserContext(), user, id, req.Body, asStaff)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// Queue GET /api/staff/tickets?status=&priority=.
func (h *TicketsHandler) Queue(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.tickets.ListForStaff(c.UserContext(), user, c.Query("status"), c.Query("priority"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(list)})
}

// ChangeStatus POST /api/staff/tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.ChangeStatus(c.UserContext(), user, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ChangePriority POST /api/staff/tickets/:id/priority.
func (h *TicketsHandler) ChangePriority(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.PriorityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.ChangePriority(c.UserContext(), user, id, req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Assign POST /api/staff/tickets/:id/assign claims the ticket for the caller.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.Assign(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListAll GET /api/admin/tickets?status=&priority=&department=.
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.tickets.ListAll(c.UserContext(), user, service.TicketListFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Department: c.Query("department"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(list)})
}
