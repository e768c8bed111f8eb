package dto

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	CategoryID     int64  `json:"category_id"`
	Title          string `json:"title"`
	TitleAr        string `json:"title_ar"`
	Description    string `json:"description"`
	DescriptionAr  string `json:"description_ar"`
	Priority       string `json:"priority"`
	ActiveLanguage string `json:"active_language"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Body string `json:"body"`
}

// PriorityRequest payload.
type PriorityRequest struct {
	Priority string `json:"priority"`
}

// TicketSummary response.
type TicketSummary struct {
	ID                 int64                 `json:"id"`
	TicketNumber       string                `json:"ticket_number"`
	Title              string                `json:"title"`
	TitleAr            string                `json:"title_ar"`
	CategoryID         int64                 `json:"category_id"`
	Status             domain.TicketStatus   `json:"status"`
	StatusBadge        string                `json:"status_badge"`
	Priority           domain.TicketPriority `json:"priority"`
	PriorityBadge      string                `json:"priority_badge"`
	CreatedByUsername  string                `json:"created_by_username"`
	CreatedByName      string                `json:"created_by_name"`
	AssignedToUsername string                `json:"assigned_to_username"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	TicketSummary
	Description     string                  `json:"description"`
	DescriptionAr   string                  `json:"description_ar"`
	ActiveLanguage  domain.Language         `json:"active_language"`
	Category        *CategoryResponse       `json:"category"`
	Messages        []TicketMessageResponse `json:"messages"`
	IsOwner         bool                    `json:"is_owner"`
	IsStaff         bool                    `json:"is_staff"`
	DepartmentStaff []StaffResponse         `json:"department_staff,omitempty"`
}

// TicketMessageResponse represents thread message.
type TicketMessageResponse struct {
	ID             int64     `json:"id"`
	TicketID       int64     `json:"ticket_id"`
	SenderUsername string    `json:"sender_username"`
	SenderName     string    `json:"sender_name"`
	SenderNameAr   string    `json:"sender_name_ar"`
	Body           string    `json:"body"`
	IsStaffReply   bool      `json:"is_staff_reply"`
	CreatedAt      time.Time `json:"created_at"`
}
