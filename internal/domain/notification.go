package domain

import "time"

// Notification is a polled inbox entry. Only IsRead changes after creation.
type Notification struct {
	ID                int64
	RecipientUsername string
	Title             LocalizedText
	Body              LocalizedText
	Link              string
	IsRead            bool
	CreatedAt         time.Time
}
