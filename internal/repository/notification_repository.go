package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// NotificationRepository stores inbox entries.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, username string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, username string) (int64, error)
	CountUnread(ctx context.Context, username string) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = `id, recipient_username, title_en, title_ar, body_en, body_ar, link, is_read, created_at`

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (recipient_username, title_en, title_ar, body_en, body_ar, link, is_read, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		n.RecipientUsername,
		n.Title.EN,
		n.Title.AR,
		n.Body.EN,
		n.Body.AR,
		n.Link,
		n.IsRead,
		n.CreatedAt,
	).Scan(&n.ID)
	return translate(err)
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id=$1`
	return scanNotification(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, username string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + notificationColumns + `
        FROM notifications WHERE recipient_username=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := conn(ctx, r.pool).Query(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	return result, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `UPDATE notifications SET is_read=TRUE WHERE id=$1`
	return execOne(ctx, conn(ctx, r.pool), query, id)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, username string) (int64, error) {
	const query = `UPDATE notifications SET is_read=TRUE WHERE recipient_username=$1 AND NOT is_read`
	cmd, err := conn(ctx, r.pool).Exec(ctx, query, username)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, username string) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE recipient_username=$1 AND NOT is_read`
	var count int64
	if err := conn(ctx, r.pool).QueryRow(ctx, query, username).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(
		&n.ID,
		&n.RecipientUsername,
		&n.Title.EN,
		&n.Title.AR,
		&n.Body.EN,
		&n.Body.AR,
		&n.Link,
		&n.IsRead,
		&n.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &n, nil
}
