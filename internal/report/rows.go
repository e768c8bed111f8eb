package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// LeaveRow is a leave request as reports see it.
type LeaveRow struct {
	ID                   int64     `json:"id"`
	RequestNumber        string    `json:"request_number"`
	EmployeeUsername     string    `json:"employee_username"`
	EmployeeName         string    `json:"employee_name"`
	EmployeeNameAr       string    `json:"employee_name_ar"`
	EmployeeDepartment   string    `json:"employee_department"`
	EmployeeDepartmentAr string    `json:"employee_department_ar"`
	ManagerName          string    `json:"manager_name"`
	ManagerNameAr        string    `json:"manager_name_ar"`
	DestinationEN        string    `json:"destination_en"`
	DestinationAR        string    `json:"destination_ar"`
	DepartureAt          time.Time `json:"departure_datetime" gorm:"column:departure_datetime"`
	ReturnAt             time.Time `json:"return_datetime" gorm:"column:return_datetime"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
}

// TableName implements gorm's tabler.
func (LeaveRow) TableName() string { return "leave_requests" }

// DurationDays is the leave length in fractional days.
func (r LeaveRow) DurationDays() float64 {
	return r.ReturnAt.Sub(r.DepartureAt).Hours() / 24
}

// BookingRow is a car booking as reports see it.
type BookingRow struct {
	ID                 int64               `json:"id"`
	BookingNumber      string              `json:"booking_number"`
	CarID              int64               `json:"car_id"`
	EmployeeUsername   string              `json:"employee_username"`
	EmployeeName       string              `json:"employee_name"`
	EmployeeDepartment string              `json:"employee_department"`
	DestinationEN      string              `json:"destination_en"`
	PurposeEN          string              `json:"purpose_en"`
	PlannedDeparture   time.Time           `json:"planned_departure"`
	ActualDeparture    *time.Time          `json:"actual_departure"`
	ActualReturn       *time.Time          `json:"actual_return"`
	OdometerReturn     decimal.NullDecimal `json:"odometer_return"`
	Status             string              `json:"status"`
}

// TableName implements gorm's tabler.
func (BookingRow) TableName() string { return "car_bookings" }

// TicketRow is a help-desk ticket as reports see it.
type TicketRow struct {
	ID                 int64     `json:"id"`
	TicketNumber       string    `json:"ticket_number"`
	Title              string    `json:"title"`
	CategoryID         int64     `json:"category_id"`
	Status             string    `json:"status"`
	Priority           string    `json:"priority"`
	CreatedByUsername  string    `json:"created_by_username"`
	CreatedByName      string    `json:"created_by_name"`
	AssignedToUsername string    `json:"assigned_to_username"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName implements gorm's tabler.
func (TicketRow) TableName() string { return "helpdesk_tickets" }

func leaveRowFrom(l domain.LeaveRequest) LeaveRow {
	return LeaveRow{
		ID:                   l.ID,
		RequestNumber:        l.RequestNumber,
		EmployeeUsername:     l.EmployeeUsername,
		EmployeeName:         l.EmployeeName,
		EmployeeNameAr:       l.EmployeeNameAr,
		EmployeeDepartment:   l.EmployeeDepartment,
		EmployeeDepartmentAr: l.EmployeeDepartmentAr,
		ManagerName:          l.ManagerName,
		ManagerNameAr:        l.ManagerNameAr,
		DestinationEN:        l.Destination.EN,
		DestinationAR:        l.Destination.AR,
		DepartureAt:          l.DepartureAt,
		ReturnAt:             l.ReturnAt,
		Status:               string(l.Status),
		CreatedAt:            l.CreatedAt,
	}
}

func bookingRowFrom(b domain.CarBooking) BookingRow {
	row := BookingRow{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		CarID:              b.CarID,
		EmployeeUsername:   b.EmployeeUsername,
		EmployeeName:       b.EmployeeName,
		EmployeeDepartment: b.EmployeeDepartment,
		DestinationEN:      b.Destination.EN,
		PurposeEN:          b.Purpose.EN,
		PlannedDeparture:   b.PlannedDeparture,
		ActualDeparture:    b.ActualDeparture,
		ActualReturn:       b.ActualReturn,
		Status:             string(b.Status),
	}
	if b.OdometerReturn != nil {
		row.OdometerReturn = decimal.NewNullDecimal(*b.OdometerReturn)
	}
	return row
}

func ticketRowFrom(t domain.Ticket) TicketRow {
	return TicketRow{
		ID:                 t.ID,
		TicketNumber:       t.TicketNumber,
		Title:              t.Title,
		CategoryID:         t.CategoryID,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		CreatedByUsername:  t.CreatedByUsername,
		CreatedByName:      t.CreatedByName,
		AssignedToUsername: t.AssignedToUsername,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}
