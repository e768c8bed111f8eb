package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/service"
)

// FleetHandler manages the car catalogue.
type FleetHandler struct {
	fleet    *service.FleetService
	bookings *service.BookingService
}

// NewFleetHandler constructs handler.
func NewFleetHandler(fleet *service.FleetService, bookings *service.BookingService) *FleetHandler {
	return &FleetHandler{fleet: fleet, bookings: bookings}
}

// List GET /api/cars.
func (h *FleetHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	entries, err := h.fleet.ListCars(c.UserContext(), user)
	if err != nil {
		return err
	}
	items := make([]dto.CarResponse, 0, len(entries))
	for i := range entries {
		items = append(items, fleetEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/cars/:id.
func (h *FleetHandler) Get(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	car, err := h.fleet.GetCar(c.UserContext(), id)
	if err != nil {
		return err
	}
	state, err := h.bookings.CarState(c.UserContext(), id)
	if err != nil {
		return err
	}
	resp := carResponse(car)
	resp.State = &state
	return c.JSON(fiber.Map{"data": resp})
}

// Create POST /api/admin/cars.
func (h *FleetHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CarRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	car, err := h.fleet.AddCar(c.UserContext(), user, carInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": carResponse(car)})
}

// Update PUT /api/admin/cars/:id.
func (h *FleetHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CarRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	car, err := h.fleet.EditCar(c.UserContext(), user, id, carInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": carResponse(car)})
}

// Toggle POST /api/admin/cars/:id/toggle.
func (h *FleetHandler) Toggle(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	car, err := h.fleet.ToggleCar(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": carResponse(car)})
}

func carInput(req dto.CarRequest) service.CarInput {
	return service.CarInput{
		PlateNumber:          req.PlateNumber,
		PlateNumberAr:        req.PlateNumberAr,
		Make:                 req.Make,
		Model:                req.Model,
		Year:                 req.Year,
		ColorEN:              req.ColorEN,
		ColorAR:              req.ColorAR,
		Seats:                req.Seats,
		PlateImage:           req.PlateImage,
		InitialMileage:       req.CurrentMileage,
		LastMajorMaintenance: req.LastMajorMaintenance,
		LastMinorMaintenance: req.LastMinorMaintenance,
		RegistrationExpiry:   req.RegistrationExpiry,
		IsActive:             req.IsActive,
	}
}
