package dto

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// LeaveRequest payload for creating or editing a leave request. Dates use
// the datetime-local layout (2006-01-02T15:04).
type LeaveRequest struct {
	ActiveLanguage       string `json:"active_language"`
	ReasonEN             string `json:"reason_en"`
	ReasonAR             string `json:"reason_ar"`
	DestinationEN        string `json:"destination_en"`
	DestinationAR        string `json:"destination_ar"`
	ManagerName          string `json:"manager_name"`
	ManagerNameAr        string `json:"manager_name_ar"`
	EmployeeNameAr       string `json:"employee_name_ar"`
	EmployeeDepartmentAr string `json:"employee_department_ar"`
	DepartureDatetime    string `json:"departure_datetime"`
	ReturnDatetime       string `json:"return_datetime"`
}

// StatusRequest payload for admin status changes.
type StatusRequest struct {
	Status string `json:"status"`
}

// LeaveResponse represents a leave request.
type LeaveResponse struct {
	ID                   int64                `json:"id"`
	RequestNumber        string               `json:"request_number"`
	EmployeeUsername     string               `json:"employee_username"`
	EmployeeName         string               `json:"employee_name"`
	EmployeeNameAr       string               `json:"employee_name_ar"`
	EmployeeDepartment   string               `json:"employee_department"`
	EmployeeDepartmentAr string               `json:"employee_department_ar"`
	EmployeeNumber       string               `json:"employee_number"`
	ActiveLanguage       domain.Language      `json:"active_language"`
	Reason               string               `json:"reason"`
	Destination          domain.LocalizedText `json:"destination"`
	ManagerName          string               `json:"manager_name"`
	ManagerNameAr        string               `json:"manager_name_ar"`
	DepartureDatetime    time.Time            `json:"departure_datetime"`
	ReturnDatetime       time.Time            `json:"return_datetime"`
	Status               domain.LeaveStatus   `json:"status"`
	StatusBadge          string               `json:"status_badge"`
	PrintedAt            *time.Time           `json:"printed_at"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}
