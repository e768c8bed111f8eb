package dto

import (
	"time"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// NotificationResponse represents an inbox entry.
type NotificationResponse struct {
	ID        int64                `json:"id"`
	Title     domain.LocalizedText `json:"title"`
	Body      domain.LocalizedText `json:"body"`
	Link      string               `json:"link"`
	IsRead    bool                 `json:"is_read"`
	CreatedAt time.Time            `json:"created_at"`
}
