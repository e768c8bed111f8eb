package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/service"
	apperrors "github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// BookingHandler manages car booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create POST /api/bookings.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.BookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	booking, err := h.bookings.Create(c.UserContext(), user, req.CarID, service.BookingInput{
		Language:             req.ActiveLanguage,
		DestinationEN:        req.DestinationEN,
		DestinationAR:        req.DestinationAR,
		PurposeEN:            req.PurposeEN,
		PurposeAR:            req.PurposeAR,
		ManagerName:          req.ManagerName,
		ManagerNameAr:        req.ManagerNameAr,
		EmployeeNameAr:       req.EmployeeNameAr,
		EmployeeDepartmentAr: req.EmployeeDepartmentAr,
		PlannedDeparture:     req.PlannedDeparture,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": bookingResponse(booking)})
}

// ListMine GET /api/bookings.
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.bookings.ListMine(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(list)})
}

// Get GET /api/bookings/:id.
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.bookings.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// ListAll GET /api/admin/bookings?status=.
func (h *BookingHandler) ListAll(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.bookings.ListAll(c.UserContext(), user, c.Query("status", "all"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponses(list)})
}

// Borrow POST /api/admin/bookings/:id/borrow.
func (h *BookingHandler) Borrow(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.BorrowRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	booking, err := h.bookings.MarkBorrowed(c.UserContext(), user, id, req.ActualDeparture)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// Return POST /api/admin/bookings/:id/return.
func (h *BookingHandler) Return(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReturnRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	booking, err := h.bookings.MarkReturned(c.UserContext(), user, id, service.ReturnInput{
		Odometer:     req.OdometerReturn,
		ActualReturn: req.ActualReturn,
		Note:         req.ReturnNote,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// SetStatus POST /api/admin/bookings/:id/status. Only archived and pending
// may be set directly; borrowed and returned have dedicated endpoints.
func (h *BookingHandler) SetStatus(c *fiber.Ctx) error {
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
	var booking *domain.CarBooking
	switch domain.BookingStatus(req.Status) {
	case domain.BookingStatusArchived:
		booking, err = h.bookings.Archive(c.UserContext(), user, id)
	case domain.BookingStatusPending:
		booking, err = h.bookings.ResetToPending(c.UserContext(), user, id)
	default:
		return apperrors.NewValidationError("unsupported status", map[string]any{"field": "status", "input": req.Status})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}
