package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/dto"
	"github.com/Behnamfe76/officedesk/internal/service"
)

// HelpdeskAdminHandler manages categories and staff memberships.
type HelpdeskAdminHandler struct {
	admin *service.HelpdeskAdminService
}

// NewHelpdeskAdminHandler constructs handler.
func NewHelpdeskAdminHandler(admin *service.HelpdeskAdminService) *HelpdeskAdminHandler {
	return &HelpdeskAdminHandler{admin: admin}
}

// ListCategories GET /api/categories.
func (h *HelpdeskAdminHandler) ListCategories(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	categories, err := h.admin.ListCategories(c.UserContext(), user)
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /api/admin/categories.
func (h *HelpdeskAdminHandler) CreateCategory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.admin.AddCategory(c.UserContext(), user, categoryInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

// UpdateCategory PUT /api/admin/categories/:id.
func (h *HelpdeskAdminHandler) UpdateCategory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.admin.EditCategory(c.UserContext(), user, id, categoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// ToggleCategory POST /api/admin/categories/:id/toggle.
func (h *HelpdeskAdminHandler) ToggleCategory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	category, err := h.admin.ToggleCategory(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// ListStaff GET /api/admin/staff?department=.
func (h *HelpdeskAdminHandler) ListStaff(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	staff, err := h.admin.ListStaff(c.UserContext(), user, c.Query("department"))
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		items = append(items, staffResponse(&staff[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddStaff POST /api/admin/staff. An existing username is reactivated.
func (h *HelpdeskAdminHandler) AddStaff(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.StaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	member, reactivated, err := h.admin.AddStaff(c.UserContext(), user, service.StaffInput{
		Username:   req.Username,
		FullName:   req.FullName,
		FullNameAr: req.FullNameAr,
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	status := http.StatusCreated
	if reactivated {
		status = http.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"data": staffResponse(member), "reactivated": reactivated})
}

// ToggleStaff POST /api/admin/staff/:id/toggle.
func (h *HelpdeskAdminHandler) ToggleStaff(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	member, err := h.admin.ToggleStaff(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(member)})
}

// Departments GET /api/departments.
func (h *HelpdeskAdminHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.admin.Departments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departments})
}

func categoryInput(req dto.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		Name:         req.Name,
		NameAr:       req.NameAr,
		Department:   req.Department,
		DepartmentAr: req.DepartmentAr,
	}
}
