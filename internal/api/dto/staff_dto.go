package dto

import "time"

// CategoryRequest payload.
type CategoryRequest struct {
	Name         string `json:"name"`
	NameAr       string `json:"name_ar"`
	Department   string `json:"department"`
	DepartmentAr string `json:"department_ar"`
}

// CategoryResponse represents a help-desk category.
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	NameAr       string    `json:"name_ar"`
	Department   string    `json:"department"`
	DepartmentAr string    `json:"department_ar"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// StaffRequest payload.
type StaffRequest struct {
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	FullNameAr string `json:"full_name_ar"`
	Department string `json:"department"`
}

// StaffResponse represents a help-desk staff membership.
type StaffResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	FullNameAr string    `json:"full_name_ar"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	AddedAt    time.Time `json:"added_at"`
}
