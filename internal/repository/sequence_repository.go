package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// SequenceRepository hands out per-prefix, per-year record sequence values.
type SequenceRepository interface {
	// Next increments and returns the sequence. Called inside the creating
	// transaction so a rolled back create does not consume a number.
	Next(ctx context.Context, prefix domain.RecordPrefix, year int) (int, error)
}

type sequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository builds repository.
func NewSequenceRepository(pool *pgxpool.Pool) SequenceRepository {
	return &sequenceRepository{pool: pool}
}

func (r *sequenceRepository) Next(ctx context.Context, prefix domain.RecordPrefix, year int) (int, error) {
	const query = `
        INSERT INTO record_sequences (prefix, year, last_value)
        VALUES ($1, $2, 1)
        ON CONFLICT (prefix, year) DO UPDATE SET last_value = record_sequences.last_value + 1
        RETURNING last_value`
	var next int
	if err := conn(ctx, r.pool).QueryRow(ctx, query, string(prefix), year).Scan(&next); err != nil {
		return 0, translate(err)
	}
	return next, nil
}
