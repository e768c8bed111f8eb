package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// TicketService drives help-desk tickets. Tickets are routed to the
// department that owns their category.
type TicketService struct {
	engine
	tickets    repository.TicketRepository
	messages   repository.TicketMessageRepository
	categories repository.CategoryRepository
	staff      repository.StaffRepository
}

// TicketInput captures the new ticket form.
type TicketInput struct {
	CategoryID    int64
	Title         string
	TitleAr       string
	Description   string
	DescriptionAr string
	Priority      string
	Language      string
}

// TicketListFilter narrows staff and admin listings. "all" or "" disables a
// field.
type TicketListFilter struct {
	Status     string
	Priority   string
	Department string
}

// TicketDetail is a ticket with its thread and the viewer's capabilities.
type TicketDetail struct {
	Ticket          domain.Ticket
	Category        *domain.HelpDeskCategory
	Messages        []domain.TicketMessage
	IsOwner         bool
	IsStaff         bool
	DepartmentStaff []domain.HelpDeskStaff
}

// NewTicketService constructs the service.
func NewTicketService(deps Dependencies) *TicketService {
	return &TicketService{
		engine:     newEngine(deps),
		tickets:    deps.Store.Tickets,
		messages:   deps.Store.Messages,
		categories: deps.Store.Categories,
		staff:      deps.Store.Staff,
	}
}

// Create opens a ticket and notifies every active staff member of the
// category's department.
func (s *TicketService) Create(ctx context.Context, actor *domain.UserProfile, input TicketInput) (*domain.Ticket, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if input.CategoryID <= 0 || title == "" {
		return nil, validationError("title", "please provide category and title", map[string]any{
			"category_id": input.CategoryID,
			"title":       input.Title,
		})
	}
	priority := domain.TicketPriorityNormal
	if raw := strings.TrimSpace(input.Priority); raw != "" {
		priority = domain.TicketPriority(raw)
		if !priority.Valid() {
			return nil, validationError("priority", "invalid priority", raw)
		}
	}
	lang, err := domain.ParseLanguage(input.Language)
	if err != nil {
		return nil, validationError("language", err.Error(), input.Language)
	}

	now := s.now()
	ticket := &domain.Ticket{
		Title:             title,
		TitleAr:           strings.TrimSpace(input.TitleAr),
		Description:       strings.TrimSpace(input.Description),
		DescriptionAr:     strings.TrimSpace(input.DescriptionAr),
		CategoryID:        input.CategoryID,
		Status:            domain.TicketStatusOpen,
		Priority:          priority,
		CreatedByUsername: actor.Username,
		CreatedByName:     actor.FullName,
		CreatedByNameAr:   actor.FullNameAr,
		Language:          lang,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		category, err := s.categories.GetByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, notFound("category", input.CategoryID, err)
			}
			return nil, err
		}
		if !category.IsActive {
			return nil, validationError("category_id", "category is not active", input.CategoryID)
		}
		number, err := s.nextNumber(ctx, domain.PrefixTicket)
		if err != nil {
			return nil, err
		}
		ticket.TicketNumber = number
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return nil, err
		}
		staff, err := s.departmentStaff(ctx, category.Department)
		if err != nil {
			return nil, err
		}
		return ticketEvent(events.EventTicketCreated, ticket, actor, false, events.TicketCreatedPayload{
			Title:           ticket.Title,
			TitleAr:         ticket.TitleAr,
			Department:      category.Department,
			DepartmentStaff: usernames(staff),
		}), nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Reply appends a message. Owners reply on their own tickets; asStaff
// replies require department membership or admin rights and move an open
// ticket to in_progress.
func (s *TicketService) Reply(ctx context.Context, actor *domain.UserProfile, id int64, body string, asStaff bool) (*domain.TicketMessage, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, validationError("body", "reply cannot be empty", body)
	}

	var msg *domain.TicketMessage
	err := s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		ticket, category, err := s.lockTicket(ctx, id)
		if err != nil {
			return nil, err
		}
		if asStaff {
			ok, err := s.isStaffFor(ctx, actor, category.Department)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errorutil.NewForbidden("help desk staff access required")
			}
		} else if !actor.Owns(ticket.CreatedByUsername) {
			return nil, errorutil.NewForbidden("access denied")
		}

		now := s.now()
		msg = &domain.TicketMessage{
			TicketID:       ticket.ID,
			SenderUsername: actor.Username,
			SenderName:     actor.FullName,
			SenderNameAr:   actor.FullNameAr,
			Body:           body,
			IsStaffReply:   asStaff,
			CreatedAt:      now,
		}
		if err := s.messages.Create(ctx, msg); err != nil {
			return nil, err
		}

		old := ticket.Status
		if asStaff && old == domain.TicketStatusOpen && domain.SystemTransitionAllowed(old, domain.TicketStatusInProgress) {
			ticket.Status = domain.TicketStatusInProgress
		}
		ticket.UpdatedAt = now
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}

		payload := events.TicketRepliedPayload{
			Owner:      ticket.CreatedByUsername,
			AssignedTo: ticket.AssignedToUsername,
			FromStaff:  asStaff,
			Body:       body,
			OldStatus:  old,
			NewStatus:  ticket.Status,
		}
		if !asStaff && ticket.AssignedToUsername == "" {
			staff, err := s.departmentStaff(ctx, category.Department)
			if err != nil {
				return nil, err
			}
			payload.DepartmentStaff = usernames(staff)
		}
		return ticketEvent(events.EventTicketReplied, ticket, actor, asStaff, payload), nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ChangeStatus sets any valid status and notifies the owner.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.UserProfile, id int64, status string) (*domain.Ticket, error) {
	next := domain.TicketStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, validationError("status", "invalid status", status)
	}
	return s.staffTransition(ctx, actor, id, func(ticket *domain.Ticket) (events.EventType, any, error) {
		old := ticket.Status
		if !domain.AdminTransitionAllowed(old, next) {
			return "", nil, errorutil.NewInvariantViolation("status transition refused", ticketDetails(ticket))
		}
		ticket.Status = next
		return events.EventTicketStatusChanged, events.TicketStatusChangedPayload{
			Owner:     ticket.CreatedByUsername,
			OldStatus: old,
			NewStatus: next,
		}, nil
	})
}

// ChangePriority sets the priority. It does not notify anyone.
func (s *TicketService) ChangePriority(ctx context.Context, actor *domain.UserProfile, id int64, priority string) (*domain.Ticket, error) {
	next := domain.TicketPriority(strings.TrimSpace(priority))
	if !next.Valid() {
		return nil, validationError("priority", "invalid priority", priority)
	}
	return s.staffTransition(ctx, actor, id, func(ticket *domain.Ticket) (events.EventType, any, error) {
		old := ticket.Priority
		ticket.Priority = next
		return events.EventTicketPriorityChanged, events.TicketPriorityChangedPayload{
			OldPriority: old,
			NewPriority: next,
		}, nil
	})
}

// Assign takes the ticket for the acting staff member. An open ticket moves
// to in_progress.
func (s *TicketService) Assign(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.Ticket, error) {
	return s.staffTransition(ctx, actor, id, func(ticket *domain.Ticket) (events.EventType, any, error) {
		payload := events.TicketAssignedPayload{
			Owner:       ticket.CreatedByUsername,
			OldAssignee: ticket.AssignedToUsername,
			NewAssignee: actor.Username,
			OldStatus:   ticket.Status,
		}
		ticket.AssignedToUsername = actor.Username
		if domain.SystemTransitionAllowed(ticket.Status, domain.TicketStatusInProgress) {
			ticket.Status = domain.TicketStatusInProgress
		}
		payload.NewStatus = ticket.Status
		return events.EventTicketAssigned, payload, nil
	})
}

type ticketMutation func(ticket *domain.Ticket) (events.EventType, any, error)

func (s *TicketService) staffTransition(ctx context.Context, actor *domain.UserProfile, id int64, mutate ticketMutation) (*domain.Ticket, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var ticket *domain.Ticket
	err := s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		var (
			category *domain.HelpDeskCategory
			err      error
		)
		ticket, category, err = s.lockTicket(ctx, id)
		if err != nil {
			return nil, err
		}
		ok, err := s.isStaffFor(ctx, actor, category.Department)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errorutil.NewForbidden("help desk staff access required")
		}
		eventType, payload, err := mutate(ticket)
		if err != nil {
			return nil, err
		}
		ticket.UpdatedAt = s.now()
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}
		return ticketEvent(eventType, ticket, actor, true, payload), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("ticket updated",
		zap.String("record_number", ticket.TicketNumber),
		zap.String("status", string(ticket.Status)),
		zap.String("priority", string(ticket.Priority)))
	return ticket, nil
}

// Get returns the ticket thread for its owner, department staff or an admin.
func (s *TicketService) Get(ctx context.Context, actor *domain.UserProfile, id int64) (*TicketDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(notFound("ticket", id, err))
	}
	category, err := s.categories.GetByID(ctx, ticket.CategoryID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError(err)
	}
	department := ""
	if category != nil {
		department = category.Department
	}
	isStaff, err := s.isStaffFor(ctx, actor, department)
	if err != nil {
		return nil, storeError(err)
	}
	isOwner := actor.Owns(ticket.CreatedByUsername)
	if !isOwner && !isStaff {
		return nil, errorutil.NewForbidden("access denied")
	}
	messages, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, storeError(err)
	}
	detail := &TicketDetail{
		Ticket:   *ticket,
		Category: category,
		Messages: messages,
		IsOwner:  isOwner,
		IsStaff:  isStaff,
	}
	if isStaff && department != "" {
		if detail.DepartmentStaff, err = s.departmentStaff(ctx, department); err != nil {
			return nil, storeError(err)
		}
	}
	return detail, nil
}

// ListMine returns the actor's own tickets, newest first.
func (s *TicketService) ListMine(ctx context.Context, actor *domain.UserProfile, status string) ([]domain.Ticket, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	username := actor.Username
	filter := repository.TicketFilter{CreatedBy: &username}
	applyTicketListFilter(&filter, TicketListFilter{Status: status})
	list, err := s.tickets.ListWithFilter(ctx, filter)
	return list, storeError(err)
}

// ListForStaff returns the queue of the actor's department. Admins without
// a membership see every department.
func (s *TicketService) ListForStaff(ctx context.Context, actor *domain.UserProfile, status, priority string) ([]domain.Ticket, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	membership, err := s.activeMembership(ctx, actor.Username)
	if err != nil {
		return nil, storeError(err)
	}
	filter := repository.TicketFilter{}
	switch {
	case membership != nil:
		department := membership.Department
		filter.Department = &department
	case actor.IsAdmin:
	default:
		return nil, errorutil.NewForbidden("help desk staff access required")
	}
	applyTicketListFilter(&filter, TicketListFilter{Status: status, Priority: priority})
	list, err := s.tickets.ListWithFilter(ctx, filter)
	return list, storeError(err)
}

// ListAll is the admin listing across departments.
func (s *TicketService) ListAll(ctx context.Context, actor *domain.UserProfile, f TicketListFilter) ([]domain.Ticket, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	filter := repository.TicketFilter{}
	applyTicketListFilter(&filter, f)
	list, err := s.tickets.ListWithFilter(ctx, filter)
	return list, storeError(err)
}

// IsStaff reports whether username has an active help-desk membership.
func (s *TicketService) IsStaff(ctx context.Context, username string) (bool, error) {
	membership, err := s.activeMembership(ctx, username)
	if err != nil {
		return false, storeError(err)
	}
	return membership != nil, nil
}

// lockTicket loads the ticket under a row lock together with its category.
func (s *TicketService) lockTicket(ctx context.Context, id int64) (*domain.Ticket, *domain.HelpDeskCategory, error) {
	ticket, err := s.tickets.GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, notFound("ticket", id, err)
	}
	category, err := s.categories.GetByID(ctx, ticket.CategoryID)
	if err != nil {
		return nil, nil, notFound("category", ticket.CategoryID, err)
	}
	return ticket, category, nil
}

func (s *TicketService) isStaffFor(ctx context.Context, actor *domain.UserProfile, department string) (bool, error) {
	if actor.IsAdmin {
		return true, nil
	}
	membership, err := s.activeMembership(ctx, actor.Username)
	if err != nil {
		return false, err
	}
	return membership.Serves(department), nil
}

func (s *TicketService) activeMembership(ctx context.Context, username string) (*domain.HelpDeskStaff, error) {
	membership, err := s.staff.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !membership.IsActive {
		return nil, nil
	}
	return membership, nil
}

func (s *TicketService) departmentStaff(ctx context.Context, department string) ([]domain.HelpDeskStaff, error) {
	active := true
	return s.staff.List(ctx, repository.StaffFilter{Department: &department, Active: &active})
}

func applyTicketListFilter(filter *repository.TicketFilter, f TicketListFilter) {
	if st := domain.TicketStatus(f.Status); st.Valid() {
		filter.Statuses = []domain.TicketStatus{st}
	}
	if p := domain.TicketPriority(f.Priority); p.Valid() {
		filter.Priorities = []domain.TicketPriority{p}
	}
	if d := strings.TrimSpace(f.Department); d != "" && d != "all" {
		filter.Department = &d
	}
}

func usernames(staff []domain.HelpDeskStaff) []string {
	out := make([]string, 0, len(staff))
	for _, st := range staff {
		out = append(out, st.Username)
	}
	return out
}

func ticketEvent(t events.EventType, ticket *domain.Ticket, actor *domain.UserProfile, isStaff bool, payload any) *events.Event {
	return &events.Event{
		Type:         t,
		Entity:       events.EntityTicket,
		RecordID:     ticket.ID,
		RecordNumber: ticket.TicketNumber,
		Actor:        events.ActorFromProfile(actor, isStaff),
		Payload:      payload,
	}
}

func ticketDetails(t *domain.Ticket) map[string]any {
	return map[string]any{
		"ticket_number": t.TicketNumber,
		"status":        t.Status,
		"priority":      t.Priority,
	}
}
