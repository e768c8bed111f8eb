package domain

import "time"

// TicketMessage captures one reply in a ticket thread.
type TicketMessage struct {
	ID             int64
	TicketID       int64
	SenderUsername string
	SenderName     string
	SenderNameAr   string
	Body           string
	BodyAr         string
	IsStaffReply   bool
	CreatedAt      time.Time
}
