package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketStatuses lists every ticket status in display order.
var TicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

func (s TicketStatus) BadgeClass() string {
	switch s {
	case TicketStatusInProgress:
		return "badge-out"
	case TicketStatusResolved:
		return "badge-approved"
	case TicketStatusClosed:
		return "badge-archived"
	default:
		return "badge-pending"
	}
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketPriorities lists every priority in display order.
var TicketPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh, TicketPriorityUrgent}

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

func (p TicketPriority) BadgeClass() string {
	switch p {
	case TicketPriorityLow:
		return "badge-draft"
	case TicketPriorityHigh:
		return "badge-warning"
	case TicketPriorityUrgent:
		return "badge-danger"
	default:
		return "badge-pending"
	}
}

// Ticket is a help-desk request routed to a department through its category.
type Ticket struct {
	ID                 int64
	TicketNumber       string
	Title              string
	TitleAr            string
	Description        string
	DescriptionAr      string
	CategoryID         int64
	Status             TicketStatus
	Priority           TicketPriority
	CreatedByUsername  string
	CreatedByName      string
	CreatedByNameAr    string
	AssignedToUsername string
	Language           Language
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
