package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/repository"
)

// HelpdeskAdminService manages categories and staff memberships.
type HelpdeskAdminService struct {
	engine
	categories repository.CategoryRepository
	staff      repository.StaffRepository
}

// CategoryInput is the admin category form.
type CategoryInput struct {
	Name         string
	NameAr       string
	Department   string
	DepartmentAr string
}

// StaffInput is the admin staff form.
type StaffInput struct {
	Username   string
	FullName   string
	FullNameAr string
	Department string
}

// NewHelpdeskAdminService constructs the service.
func NewHelpdeskAdminService(deps Dependencies) *HelpdeskAdminService {
	return &HelpdeskAdminService{
		engine:     newEngine(deps),
		categories: deps.Store.Categories,
		staff:      deps.Store.Staff,
	}
}

// ListCategories returns categories; non-admins only see active ones.
func (s *HelpdeskAdminService) ListCategories(ctx context.Context, actor *domain.UserProfile) ([]domain.HelpDeskCategory, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	list, err := s.categories.List(ctx, !actor.IsAdmin)
	return list, storeError(err)
}

// AddCategory creates an active category.
func (s *HelpdeskAdminService) AddCategory(ctx context.Context, actor *domain.UserProfile, input CategoryInput) (*domain.HelpDeskCategory, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	category := &domain.HelpDeskCategory{IsActive: true, CreatedAt: s.now()}
	if err := applyCategoryInput(category, input); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, storeError(err)
	}
	s.logger.Info("category added", zap.Int64("category_id", category.ID), zap.String("department", category.Department))
	return category, nil
}

// EditCategory updates names and department.
func (s *HelpdeskAdminService) EditCategory(ctx context.Context, actor *domain.UserProfile, id int64, input CategoryInput) (*domain.HelpDeskCategory, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.mutateCategory(ctx, id, func(c *domain.HelpDeskCategory) error {
		return applyCategoryInput(c, input)
	})
}

// ToggleCategory flips whether new tickets may use the category.
func (s *HelpdeskAdminService) ToggleCategory(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.HelpDeskCategory, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.mutateCategory(ctx, id, func(c *domain.HelpDeskCategory) error {
		c.IsActive = !c.IsActive
		return nil
	})
}

func (s *HelpdeskAdminService) mutateCategory(ctx context.Context, id int64, mutate func(*domain.HelpDeskCategory) error) (*domain.HelpDeskCategory, error) {
	var category *domain.HelpDeskCategory
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.categories.GetByID(ctx, id)
		if err != nil {
			return notFound("category", id, err)
		}
		if err := mutate(category); err != nil {
			return err
		}
		return s.categories.Update(ctx, category)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return category, nil
}

// ListStaff returns every membership, optionally for one department.
func (s *HelpdeskAdminService) ListStaff(ctx context.Context, actor *domain.UserProfile, department string) ([]domain.HelpDeskStaff, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	filter := repository.StaffFilter{}
	if d := strings.TrimSpace(department); d != "" && d != "all" {
		filter.Department = &d
	}
	list, err := s.staff.List(ctx, filter)
	return list, storeError(err)
}

// AddStaff adds a membership. An existing username is reactivated and
// updated instead.
func (s *HelpdeskAdminService) AddStaff(ctx context.Context, actor *domain.UserProfile, input StaffInput) (*domain.HelpDeskStaff, bool, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, false, err
	}
	username := strings.ToLower(strings.TrimSpace(input.Username))
	fullName := strings.TrimSpace(input.FullName)
	department := strings.TrimSpace(input.Department)
	if username == "" || fullName == "" || department == "" {
		return nil, false, validationError("username", "username, name, and department are required", map[string]any{
			"username":   input.Username,
			"full_name":  input.FullName,
			"department": input.Department,
		})
	}

	var (
		member      *domain.HelpDeskStaff
		reactivated bool
	)
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.staff.GetByUsername(ctx, username)
		switch {
		case err == nil:
			existing.IsActive = true
			existing.FullName = fullName
			existing.FullNameAr = strings.TrimSpace(input.FullNameAr)
			existing.Department = department
			member, reactivated = existing, true
			return s.staff.Update(ctx, existing)
		case errors.Is(err, repository.ErrNotFound):
			member = &domain.HelpDeskStaff{
				Username:   username,
				FullName:   fullName,
				FullNameAr: strings.TrimSpace(input.FullNameAr),
				Department: department,
				IsActive:   true,
				AddedAt:    s.now(),
			}
			return s.staff.Create(ctx, member)
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, storeError(err)
	}
	s.logger.Info("staff member saved",
		zap.String("username", username),
		zap.String("department", department),
		zap.Bool("reactivated", reactivated))
	return member, reactivated, nil
}

// ToggleStaff flips a membership's active flag.
func (s *HelpdeskAdminService) ToggleStaff(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.HelpDeskStaff, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var member *domain.HelpDeskStaff
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		member, err = s.staff.GetByID(ctx, id)
		if err != nil {
			return notFound("staff member", id, err)
		}
		member.IsActive = !member.IsActive
		return s.staff.Update(ctx, member)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return member, nil
}

// Departments lists the distinct departments that own categories.
func (s *HelpdeskAdminService) Departments(ctx context.Context) ([]string, error) {
	categories, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, storeError(err)
	}
	seen := map[string]struct{}{}
	var out []string
	for _, c := range categories {
		if _, ok := seen[c.Department]; ok {
			continue
		}
		seen[c.Department] = struct{}{}
		out = append(out, c.Department)
	}
	return out, nil
}

func applyCategoryInput(c *domain.HelpDeskCategory, input CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	department := strings.TrimSpace(input.Department)
	if name == "" || department == "" {
		return validationError("name", "name and department are required", map[string]any{
			"name":       input.Name,
			"department": input.Department,
		})
	}
	c.Name = name
	c.NameAr = strings.TrimSpace(input.NameAr)
	c.Department = department
	c.DepartmentAr = strings.TrimSpace(input.DepartmentAr)
	return nil
}
