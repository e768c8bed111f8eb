package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus enumerates car booking states.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusBorrowed BookingStatus = "borrowed"
	BookingStatusReturned BookingStatus = "returned"
	BookingStatusArchived BookingStatus = "archived"
)

// BookingStatuses lists every booking status in display order.
var BookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusBorrowed, BookingStatusReturned, BookingStatusArchived}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusBorrowed, BookingStatusReturned, BookingStatusArchived:
		return true
	}
	return false
}

// Active reports whether a booking in this status holds its car.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusBorrowed
}

func (s BookingStatus) BadgeClass() string {
	switch s {
	case BookingStatusBorrowed:
		return "badge-out"
	case BookingStatusReturned:
		return "badge-returned"
	case BookingStatusArchived:
		return "badge-archived"
	default:
		return "badge-pending"
	}
}

// CarBooking reserves a car for an employee trip.
type CarBooking struct {
	ID                   int64
	BookingNumber        string
	CarID                int64
	EmployeeUsername     string
	EmployeeName         string
	EmployeeNameAr       string
	EmployeeDepartment   string
	EmployeeDepartmentAr string
	EmployeeNumber       string
	Destination          LocalizedText
	Purpose              LocalizedText
	ManagerName          string
	ManagerNameAr        string
	PlannedDeparture     time.Time
	ActualDeparture      *time.Time
	ActualReturn         *time.Time
	OdometerReturn       *decimal.Decimal
	ReturnNote           string
	Language             Language
	Status               BookingStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
