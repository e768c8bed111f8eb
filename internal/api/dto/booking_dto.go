package dto

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// BookingRequest payload for booking a car.
type BookingRequest struct {
	CarID                int64  `json:"car_id"`
	ActiveLanguage       string `json:"active_language"`
	DestinationEN        string `json:"destination_en"`
	DestinationAR        string `json:"destination_ar"`
	PurposeEN            string `json:"purpose_en"`
	PurposeAR            string `json:"purpose_ar"`
	ManagerName          string `json:"manager_name"`
	ManagerNameAr        string `json:"manager_name_ar"`
	EmployeeNameAr       string `json:"employee_name_ar"`
	EmployeeDepartmentAr string `json:"employee_department_ar"`
	PlannedDeparture     string `json:"planned_departure"`
}

// BorrowRequest payload for the key hand-over.
type BorrowRequest struct {
	ActualDeparture string `json:"actual_departure"`
}

// ReturnRequest payload for the car return.
type ReturnRequest struct {
	OdometerReturn string `json:"odometer_return"`
	ActualReturn   string `json:"actual_return"`
	ReturnNote     string `json:"return_note"`
}

// BookingResponse represents a car booking.
type BookingResponse struct {
	ID                 int64                `json:"id"`
	BookingNumber      string               `json:"booking_number"`
	CarID              int64                `json:"car_id"`
	EmployeeUsername   string               `json:"employee_username"`
	EmployeeName       string               `json:"employee_name"`
	EmployeeNameAr     string               `json:"employee_name_ar"`
	EmployeeDepartment string               `json:"employee_department"`
	EmployeeNumber     string               `json:"employee_number"`
	Destination        domain.LocalizedText `json:"destination"`
	Purpose            domain.LocalizedText `json:"purpose"`
	ManagerName        string               `json:"manager_name"`
	PlannedDeparture   time.Time            `json:"planned_departure"`
	ActualDeparture    *time.Time           `json:"actual_departure"`
	ActualReturn       *time.Time           `json:"actual_return"`
	OdometerReturn     *string              `json:"odometer_return"`
	ReturnNote         string               `json:"return_note"`
	ActiveLanguage     domain.Language      `json:"active_language"`
	Status             domain.BookingStatus `json:"status"`
	StatusBadge        string               `json:"status_badge"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// CarRequest payload for adding or editing a car.
type CarRequest struct {
	PlateNumber          string `json:"plate_number"`
	PlateNumberAr        string `json:"plate_number_ar"`
	Make                 string `json:"make"`
	Model                string `json:"model"`
	Year                 int    `json:"year"`
	ColorEN              string `json:"color_en"`
	ColorAR              string `json:"color_ar"`
	Seats                int    `json:"seats"`
	PlateImage           string `json:"plate_image"`
	CurrentMileage       string `json:"current_mileage"`
	LastMajorMaintenance string `json:"last_major_maintenance"`
	LastMinorMaintenance string `json:"last_minor_maintenance"`
	RegistrationExpiry   string `json:"registration_expiry"`
	IsActive             *bool  `json:"is_active"`
}

// CarResponse represents a car with its derived state.
type CarResponse struct {
	ID                   int64                     `json:"id"`
	DisplayName          string                    `json:"display_name"`
	PlateNumber          string                    `json:"plate_number"`
	PlateNumberAr        string                    `json:"plate_number_ar"`
	Make                 string                    `json:"make"`
	Model                string                    `json:"model"`
	Year                 int                       `json:"year"`
	Color                domain.LocalizedText      `json:"color"`
	Seats                int                       `json:"seats"`
	PlateImage           string                    `json:"plate_image"`
	IsActive             bool                      `json:"is_active"`
	CurrentMileage       string                    `json:"current_mileage"`
	LastMajorMaintenance *time.Time                `json:"last_major_maintenance"`
	LastMinorMaintenance *time.Time                `json:"last_minor_maintenance"`
	RegistrationExpiry   *time.Time                `json:"registration_expiry"`
	RegistrationStatus   domain.RegistrationStatus `json:"registration_status,omitempty"`
	RegistrationDaysLeft *int                      `json:"registration_days_left,omitempty"`
	State                *domain.CarState          `json:"state,omitempty"`
}
