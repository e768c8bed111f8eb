package dto

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      domain.UserProfile `json:"user"`
}

// MeResponse describes the caller and their inbox badge.
type MeResponse struct {
	User            domain.UserProfile `json:"user"`
	UnreadCount     int64              `json:"unread_count"`
	IsHelpdeskStaff bool               `json:"is_helpdesk_staff"`
}
