package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/report"
	apperrors "github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves the admin reports.
type ReportsHandler struct {
	reports *report.Service
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *report.Service) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Show GET /api/admin/reports/:entity.
func (h *ReportsHandler) Show(c *fiber.Ctx) error {
	entity, err := entityParam(c)
	if err != nil {
		return err
	}
	f := reportFilter(c)
	var data any
	switch entity {
	case report.EntityLeave:
		data, err = h.reports.Leave(c.UserContext(), f)
	case report.EntityBooking:
		data, err = h.reports.Bookings(c.UserContext(), f)
	case report.EntityTicket:
		data, err = h.reports.Tickets(c.UserContext(), f)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": data})
}

// Options GET /api/admin/reports/:entity/options?dimension=.
func (h *ReportsHandler) Options(c *fiber.Ctx) error {
	entity, err := entityParam(c)
	if err != nil {
		return err
	}
	f := reportFilter(c).Normalize(entity)
	options, err := h.reports.Options(c.UserContext(), entity, f.Dimension)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": options, "dimension": f.Dimension})
}

// Export GET /api/admin/reports/:entity/export.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	entity, err := entityParam(c)
	if err != nil {
		return err
	}
	data, _, err := h.reports.ExportXLSX(c.UserContext(), entity, reportFilter(c))
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("%s-report-%s.xlsx", entity, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func entityParam(c *fiber.Ctx) (report.Entity, error) {
	entity := report.Entity(strings.ToLower(c.Params("entity")))
	if _, ok := report.Dimensions[entity]; !ok {
		return "", apperrors.NewNotFound("report", map[string]any{"entity": c.Params("entity")})
	}
	return entity, nil
}

func reportFilter(c *fiber.Ctx) report.Filter {
	return report.Filter{
		Dimension:  report.Dimension(c.Query("dimension")),
		SelectedID: c.Query("selected", "all"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Status:     c.Query("status", "all"),
		Priority:   c.Query("priority", "all"),
	}
}
