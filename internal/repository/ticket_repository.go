package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// TicketFilter captures ticket search parameters.
type TicketFilter struct {
	CreatedBy  *string
	Department *string
	CategoryID *int64
	AssignedTo *string
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Limit      int
	Offset     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `t.id, t.ticket_number, t.title, t.title_ar, t.description, t.description_ar,
        t.category_id, t.status, t.priority, t.created_by_username, t.created_by_name,
        t.created_by_name_ar, t.assigned_to_username, t.active_language, t.created_at, t.updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO helpdesk_tickets (ticket_number, title, title_ar, description, description_ar, category_id,
            status, priority, created_by_username, created_by_name, created_by_name_ar, assigned_to_username,
            active_language, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Title,
		ticket.TitleAr,
		ticket.Description,
		ticket.DescriptionAr,
		ticket.CategoryID,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedByUsername,
		ticket.CreatedByName,
		ticket.CreatedByNameAr,
		ticket.AssignedToUsername,
		string(ticket.Language),
		ticket.CreatedAt,
	).Scan(&ticket.ID)
	if err != nil {
		return translate(err)
	}
	ticket.UpdatedAt = ticket.CreatedAt
	return nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE helpdesk_tickets SET status=$1, priority=$2, assigned_to_username=$3, updated_at=$4
        WHERE id=$5`
	return execOne(ctx, conn(ctx, r.pool), query,
		ticket.Status,
		ticket.Priority,
		ticket.AssignedToUsername,
		ticket.UpdatedAt,
		ticket.ID,
	)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM helpdesk_tickets t WHERE t.id=$1`
	return scanTicket(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *ticketRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM helpdesk_tickets t WHERE t.id=$1 FOR UPDATE`
	return scanTicket(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + `
             FROM helpdesk_tickets t JOIN helpdesk_categories c ON c.id = t.category_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("t.created_by_username=$%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("c.department=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("t.category_id=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("t.assigned_to_username=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("t.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("t.priority IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.created_at DESC, t.id DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket domain.Ticket
		lang   string
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Title,
		&ticket.TitleAr,
		&ticket.Description,
		&ticket.DescriptionAr,
		&ticket.CategoryID,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatedByUsername,
		&ticket.CreatedByName,
		&ticket.CreatedByNameAr,
		&ticket.AssignedToUsername,
		&lang,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	ticket.Language = domain.Language(lang)
	return &ticket, nil
}
