package domain

import "time"

// HelpDeskCategory routes tickets to the department that owns it.
type HelpDeskCategory struct {
	ID           int64
	Name         string
	NameAr       string
	Department   string
	DepartmentAr string
	IsActive     bool
	CreatedAt    time.Time
}

// HelpDeskStaff is a department membership for help-desk agents.
type HelpDeskStaff struct {
	ID         int64
	Username   string
	FullName   string
	FullNameAr string
	Department string
	IsActive   bool
	AddedAt    time.Time
}

// Serves reports whether the membership may act on tickets of department.
func (s *HelpDeskStaff) Serves(department string) bool {
	return s != nil && s.IsActive && s.Department == department
}
