package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// TicketMessageRepository manages ticket thread messages. Messages are
// append-only.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error)
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO ticket_messages (ticket_id, sender_username, sender_name, sender_name_ar, body, body_ar,
            is_staff_reply, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		msg.TicketID,
		msg.SenderUsername,
		msg.SenderName,
		msg.SenderNameAr,
		msg.Body,
		msg.BodyAr,
		msg.IsStaffReply,
		msg.CreatedAt,
	).Scan(&msg.ID)
	return translate(err)
}

func (r *ticketMessageRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error) {
	const query = `
        SELECT id, ticket_id, sender_username, sender_name, sender_name_ar, body, body_ar, is_staff_reply, created_at
        FROM ticket_messages WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := conn(ctx, r.pool).Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketMessage
	for rows.Next() {
		var msg domain.TicketMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.SenderUsername,
			&msg.SenderName,
			&msg.SenderNameAr,
			&msg.Body,
			&msg.BodyAr,
			&msg.IsStaffReply,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
