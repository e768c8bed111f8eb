package events

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveCreated          EventType = "leave_created"
	EventLeaveEdited           EventType = "leave_edited"
	EventLeavePrinted          EventType = "leave_printed"
	EventLeaveStatusChanged    EventType = "leave_status_changed"
	EventBookingCreated        EventType = "booking_created"
	EventBookingStatusChanged  EventType = "booking_status_changed"
	EventTicketCreated         EventType = "ticket_created"
	EventTicketReplied         EventType = "ticket_replied"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
)

// Entity names the workflow an event belongs to.
type Entity string

const (
	EntityLeave   Entity = "leave_request"
	EntityBooking Entity = "car_booking"
	EntityTicket  Entity = "helpdesk_ticket"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
}

// ActorFromProfile builds an actor from the acting user.
func ActorFromProfile(u *domain.UserProfile, isStaff bool) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{Username: u.Username, Name: u.FullName, IsAdmin: u.IsAdmin, IsStaff: isStaff}
}

// Event represents a domain event emitted by the lifecycle engine.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	Entity       Entity      `json:"entity"`
	RecordID     int64       `json:"record_id"`
	RecordNumber string      `json:"record_number"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
	// Recipients is filled after fan-out so post-commit handlers know whose
	// inbox changed.
	Recipients []string `json:"recipients,omitempty"`
}

// LeaveStatusChangedPayload payload.
type LeaveStatusChangedPayload struct {
	Owner     string             `json:"owner"`
	OldStatus domain.LeaveStatus `json:"old_status"`
	NewStatus domain.LeaveStatus `json:"new_status"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	Owner     string               `json:"owner"`
	OldStatus domain.BookingStatus `json:"old_status"`
	NewStatus domain.BookingStatus `json:"new_status"`
}

// TicketCreatedPayload payload. DepartmentStaff holds the usernames of every
// active staff member of the category's department at creation time.
type TicketCreatedPayload struct {
	Title           string   `json:"title"`
	TitleAr         string   `json:"title_ar,omitempty"`
	Department      string   `json:"department"`
	DepartmentStaff []string `json:"department_staff"`
}

// TicketRepliedPayload payload.
type TicketRepliedPayload struct {
	Owner           string              `json:"owner"`
	AssignedTo      string              `json:"assigned_to,omitempty"`
	DepartmentStaff []string            `json:"department_staff,omitempty"`
	FromStaff       bool                `json:"from_staff"`
	Body            string              `json:"body"`
	OldStatus       domain.TicketStatus `json:"old_status"`
	NewStatus       domain.TicketStatus `json:"new_status"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Owner     string              `json:"owner"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Owner       string              `json:"owner"`
	OldAssignee string              `json:"old_assignee,omitempty"`
	NewAssignee string              `json:"new_assignee"`
	OldStatus   domain.TicketStatus `json:"old_status"`
	NewStatus   domain.TicketStatus `json:"new_status"`
}
