package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/identity"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// LeaveService drives the leave request lifecycle.
type LeaveService struct {
	engine
	leaves   repository.LeaveRepository
	identity identity.Provider
}

// LeaveInput is the submitted leave form. Departure and Return use the
// datetime-local layout.
type LeaveInput struct {
	Language             string
	ReasonEN             string
	ReasonAR             string
	DestinationEN        string
	DestinationAR        string
	ManagerName          string
	ManagerNameAr        string
	EmployeeNameAr       string
	EmployeeDepartmentAr string
	Departure            string
	Return               string
}

type leaveFields struct {
	reason      domain.Content
	destination domain.LocalizedText
	departure   time.Time
	ret         time.Time
}

// NewLeaveService constructs the service.
func NewLeaveService(deps Dependencies, provider identity.Provider) *LeaveService {
	return &LeaveService{
		engine:   newEngine(deps),
		leaves:   deps.Store.Leaves,
		identity: provider,
	}
}

// Create files a draft leave request for the actor.
func (s *LeaveService) Create(ctx context.Context, actor *domain.UserProfile, input LeaveInput) (*domain.LeaveRequest, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	fields, err := validateLeave(input)
	if err != nil {
		return nil, err
	}
	now := s.now()
	leave := &domain.LeaveRequest{
		EmployeeUsername:     actor.Username,
		EmployeeName:         actor.FullName,
		EmployeeNameAr:       firstNonEmpty(input.EmployeeNameAr, actor.FullNameAr),
		EmployeeDepartment:   actor.Department,
		EmployeeDepartmentAr: strings.TrimSpace(input.EmployeeDepartmentAr),
		EmployeeNumber:       actor.EmployeeNumber,
		Reason:               fields.reason,
		Destination:          fields.destination,
		ManagerName:          strings.TrimSpace(input.ManagerName),
		ManagerNameAr:        strings.TrimSpace(input.ManagerNameAr),
		DepartureAt:          fields.departure,
		ReturnAt:             fields.ret,
		Status:               domain.LeaveStatusDraft,
		CreatedAt:            now,
	}

	err = s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		number, err := s.nextNumber(ctx, domain.PrefixLeave)
		if err != nil {
			return nil, err
		}
		leave.RequestNumber = number
		if err := s.leaves.Create(ctx, leave); err != nil {
			return nil, err
		}
		return leaveEvent(events.EventLeaveCreated, leave, actor, nil), nil
	})
	if err != nil {
		return nil, err
	}
	return leave, nil
}

// Edit replaces the form fields of an editable request. Status is unchanged.
func (s *LeaveService) Edit(ctx context.Context, actor *domain.UserProfile, id int64, input LeaveInput) (*domain.LeaveRequest, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var leave *domain.LeaveRequest
	err := s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		var err error
		leave, err = s.leaves.GetForUpdate(ctx, id)
		if err != nil {
			return nil, notFound("leave request", id, err)
		}
		if !actor.Owns(leave.EmployeeUsername) && !actor.IsAdmin {
			return nil, errorutil.NewForbidden("you can only edit your own requests")
		}
		if !leave.Status.Editable() {
			return nil, errorutil.NewInvariantViolation("request cannot be edited in its current status", map[string]any{
				"request_number": leave.RequestNumber,
				"status":         leave.Status,
			})
		}
		fields, err := validateLeave(input)
		if err != nil {
			return nil, err
		}
		leave.Reason = fields.reason
		leave.Destination = fields.destination
		leave.ManagerName = strings.TrimSpace(input.ManagerName)
		leave.ManagerNameAr = strings.TrimSpace(input.ManagerNameAr)
		leave.EmployeeNameAr = firstNonEmpty(input.EmployeeNameAr, leave.EmployeeNameAr)
		leave.EmployeeDepartmentAr = firstNonEmpty(input.EmployeeDepartmentAr, leave.EmployeeDepartmentAr)
		leave.DepartureAt = fields.departure
		leave.ReturnAt = fields.ret
		leave.UpdatedAt = s.now()
		if err := s.leaves.Update(ctx, leave); err != nil {
			return nil, err
		}
		return leaveEvent(events.EventLeaveEdited, leave, actor, nil), nil
	})
	if err != nil {
		return nil, err
	}
	return leave, nil
}

// MarkPrinted records that the slip was printed. A draft moves to pending;
// any other status is left as is.
func (s *LeaveService) MarkPrinted(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.LeaveRequest, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var leave *domain.LeaveRequest
	err := s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		var err error
		leave, err = s.leaves.GetForUpdate(ctx, id)
		if err != nil {
			return nil, notFound("leave request", id, err)
		}
		if !actor.Owns(leave.EmployeeUsername) && !actor.IsAdmin {
			return nil, errorutil.NewForbidden("you can only print your own requests")
		}
		if !domain.SystemTransitionAllowed(leave.Status, domain.LeaveStatusPending) {
			return nil, nil
		}
		now := s.now()
		leave.Status = domain.LeaveStatusPending
		leave.PrintedAt = &now
		leave.UpdatedAt = now
		if err := s.leaves.Update(ctx, leave); err != nil {
			return nil, err
		}
		return leaveEvent(events.EventLeavePrinted, leave, actor, nil), nil
	})
	if err != nil {
		return nil, err
	}
	return leave, nil
}

// SetStatus is the admin override; any status may follow any status.
func (s *LeaveService) SetStatus(ctx context.Context, actor *domain.UserProfile, id int64, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, validationError("status", "unknown leave status", status)
	}
	var leave *domain.LeaveRequest
	err := s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		var err error
		leave, err = s.leaves.GetForUpdate(ctx, id)
		if err != nil {
			return nil, notFound("leave request", id, err)
		}
		old := leave.Status
		if !domain.AdminTransitionAllowed(old, status) {
			return nil, errorutil.NewInvariantViolation("status transition refused", map[string]any{
				"request_number": leave.RequestNumber,
				"status":         old,
			})
		}
		leave.Status = status
		leave.UpdatedAt = s.now()
		if err := s.leaves.Update(ctx, leave); err != nil {
			return nil, err
		}
		return leaveEvent(events.EventLeaveStatusChanged, leave, actor, events.LeaveStatusChangedPayload{
			Owner:     leave.EmployeeUsername,
			OldStatus: old,
			NewStatus: status,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("leave status set",
		zap.String("record_number", leave.RequestNumber),
		zap.String("status", string(leave.Status)))
	return leave, nil
}

// Get returns a request visible to its owner or an admin.
func (s *LeaveService) Get(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.LeaveRequest, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(notFound("leave request", id, err))
	}
	if !actor.Owns(leave.EmployeeUsername) && !actor.IsAdmin {
		return nil, errorutil.NewForbidden("access denied")
	}
	return leave, nil
}

// ListMine returns the actor's requests, newest first.
func (s *LeaveService) ListMine(ctx context.Context, actor *domain.UserProfile) ([]domain.LeaveRequest, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	list, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeUsername: actor.Username})
	return list, storeError(err)
}

// ListAll is the admin dashboard listing. "all" or "" disables the status filter.
func (s *LeaveService) ListAll(ctx context.Context, actor *domain.UserProfile, status string) ([]domain.LeaveRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	filter := repository.LeaveFilter{}
	if st := domain.LeaveStatus(status); st.Valid() {
		filter.Status = st
	}
	list, err := s.leaves.List(ctx, filter)
	return list, storeError(err)
}

// Managers lists approving managers for the request form.
func (s *LeaveService) Managers(ctx context.Context) ([]domain.Manager, error) {
	if s.identity == nil {
		return []domain.Manager{}, nil
	}
	managers, err := s.identity.ListManagers(ctx)
	if err != nil {
		s.logger.Warn("list managers failed", zap.Error(err))
		return []domain.Manager{}, nil
	}
	return managers, nil
}

func validateLeave(input LeaveInput) (*leaveFields, error) {
	lang, err := domain.ParseLanguage(input.Language)
	if err != nil {
		return nil, validationError("language", err.Error(), input.Language)
	}
	departure, err := domain.ParseFormDateTime(input.Departure)
	if err != nil {
		return nil, validationError("departure_datetime", "invalid date format", input.Departure)
	}
	ret, err := domain.ParseFormDateTime(input.Return)
	if err != nil {
		return nil, validationError("return_datetime", "invalid date format", input.Return)
	}
	if !ret.After(departure) {
		return nil, validationError("return_datetime", "return time must be after departure time", input.Return)
	}
	reason := domain.ContentFor(lang, input.ReasonEN, input.ReasonAR)
	if reason.IsEmpty() {
		return nil, validationError("reason", "reason for leaving is required", nil)
	}
	if strings.TrimSpace(input.ManagerName) == "" {
		return nil, validationError("manager_name", "please select an approving manager", nil)
	}
	return &leaveFields{
		reason: reason,
		destination: domain.LocalizedText{
			EN: strings.TrimSpace(input.DestinationEN),
			AR: strings.TrimSpace(input.DestinationAR),
		},
		departure: departure,
		ret:       ret,
	}, nil
}

func leaveEvent(t events.EventType, leave *domain.LeaveRequest, actor *domain.UserProfile, payload any) *events.Event {
	return &events.Event{
		Type:         t,
		Entity:       events.EntityLeave,
		RecordID:     leave.ID,
		RecordNumber: leave.RequestNumber,
		Actor:        events.ActorFromProfile(actor, false),
		Payload:      payload,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
