package domain

import "time"

// LeaveStatus enumerates leave request states.
type LeaveStatus string

const (
	LeaveStatusDraft    LeaveStatus = "draft"
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusArchived LeaveStatus = "archived"
)

// LeaveStatuses lists every leave status in display order.
var LeaveStatuses = []LeaveStatus{LeaveStatusDraft, LeaveStatusPending, LeaveStatusApproved, LeaveStatusArchived}

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusDraft, LeaveStatusPending, LeaveStatusApproved, LeaveStatusArchived:
		return true
	}
	return false
}

// Editable reports whether requests in this status accept field edits.
func (s LeaveStatus) Editable() bool {
	return s == LeaveStatusDraft || s == LeaveStatusPending
}

func (s LeaveStatus) BadgeClass() string {
	switch s {
	case LeaveStatusPending:
		return "badge-pending"
	case LeaveStatusApproved:
		return "badge-approved"
	case LeaveStatusArchived:
		return "badge-archived"
	default:
		return "badge-draft"
	}
}

// LeaveRequest is a permission to leave the premises.
type LeaveRequest struct {
	ID                   int64
	RequestNumber        string
	EmployeeUsername     string
	EmployeeName         string
	EmployeeNameAr       string
	EmployeeDepartment   string
	EmployeeDepartmentAr string
	EmployeeNumber       string
	Reason               Content
	Destination          LocalizedText
	ManagerName          string
	ManagerNameAr        string
	DepartureAt          time.Time
	ReturnAt             time.Time
	Status               LeaveStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
	PrintedAt            *time.Time
}

// Duration returns the planned absence length.
func (l *LeaveRequest) Duration() time.Duration {
	return l.ReturnAt.Sub(l.DepartureAt)
}
