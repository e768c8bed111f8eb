package domain

// UserProfile is the identity resolved from a credential pair.
type UserProfile struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	FullNameAr     string `json:"full_name_ar,omitempty"`
	Department     string `json:"department"`
	EmployeeNumber string `json:"employee_number"`
	IsAdmin        bool   `json:"is_admin"`
	IsManager      bool   `json:"is_manager"`
}

// Manager is an approving manager offered on request forms.
type Manager struct {
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// Owns reports whether the profile owns a record created by username.
func (u *UserProfile) Owns(username string) bool {
	return u != nil && u.Username != "" && u.Username == username
}
