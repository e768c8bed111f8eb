package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/service"
)

// LeaveHandler manages leave request endpoints.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaves *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// Create POST /api/leave.
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.LeaveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	leave, err := h.leaves.Create(c.UserContext(), user, leaveInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leaveResponse(leave)})
}

// ListMine GET /api/leave.
func (h *LeaveHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.leaves.ListMine(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponses(list)})
}

// Get GET /api/leave/:id.
func (h *LeaveHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	leave, err := h.leaves.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}

// Edit PUT /api/leave/:id.
func (h *LeaveHandler) Edit(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.LeaveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	leave, err := h.leaves.Edit(c.UserContext(), user, id, leaveInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}

// Print POST /api/leave/:id/print.
func (h *LeaveHandler) Print(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	leave, err := h.leaves.MarkPrinted(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}

// ListAll GET /api/admin/leave?status=.
func (h *LeaveHandler) ListAll(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.leaves.ListAll(c.UserContext(), user, c.Query("status", "all"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponses(list)})
}

// SetStatus POST /api/admin/leave/:id/status.
func (h *LeaveHandler) SetStatus(c *fiber.Ctx) error {
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
	leave, err := h.leaves.SetStatus(c.UserContext(), user, id, domain.LeaveStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}

func leaveInput(req dto.LeaveRequest) service.LeaveInput {
	return service.LeaveInput{
		Language:             req.ActiveLanguage,
		ReasonEN:             req.ReasonEN,
		ReasonAR:             req.ReasonAR,
		DestinationEN:        req.DestinationEN,
		DestinationAR:        req.DestinationAR,
		ManagerName:          req.ManagerName,
		ManagerNameAr:        req.ManagerNameAr,
		EmployeeNameAr:       req.EmployeeNameAr,
		EmployeeDepartmentAr: req.EmployeeDepartmentAr,
		Departure:            req.DepartureDatetime,
		Return:               req.ReturnDatetime,
	}
}
