package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// StaffRepository handles persistence for help-desk staff memberships.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.HelpDeskStaff) error
	Update(ctx context.Context, staff *domain.HelpDeskStaff) error
	GetByID(ctx context.Context, id int64) (*domain.HelpDeskStaff, error)
	GetByUsername(ctx context.Context, username string) (*domain.HelpDeskStaff, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.HelpDeskStaff, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Department *string
	Active     *bool
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, username, full_name, full_name_ar, department, is_active, added_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.HelpDeskStaff) error {
	const query = `
        INSERT INTO helpdesk_staff (username, full_name, full_name_ar, department, is_active, added_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`

	err := conn(ctx, r.pool).QueryRow(ctx, query,
		staff.Username,
		staff.FullName,
		staff.FullNameAr,
		staff.Department,
		staff.IsActive,
		staff.AddedAt,
	).Scan(&staff.ID)
	return translate(err)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.HelpDeskStaff) error {
	const query = `
        UPDATE helpdesk_staff
        SET full_name=$1, full_name_ar=$2, department=$3, is_active=$4
        WHERE id=$5`

	return execOne(ctx, conn(ctx, r.pool), query,
		staff.FullName,
		staff.FullNameAr,
		staff.Department,
		staff.IsActive,
		staff.ID,
	)
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*domain.HelpDeskStaff, error) {
	query := `SELECT ` + staffColumns + ` FROM helpdesk_staff WHERE id=$1`
	return scanStaff(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*domain.HelpDeskStaff, error) {
	query := `SELECT ` + staffColumns + ` FROM helpdesk_staff WHERE username=$1`
	return scanStaff(conn(ctx, r.pool).QueryRow(ctx, query, username))
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.HelpDeskStaff, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("is_active=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM helpdesk_staff WHERE %s ORDER BY department, full_name, id`,
		staffColumns, strings.Join(clauses, " AND "))

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HelpDeskStaff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func scanStaff(row pgx.Row) (*domain.HelpDeskStaff, error) {
	var staff domain.HelpDeskStaff
	if err := row.Scan(
		&staff.ID,
		&staff.Username,
		&staff.FullName,
		&staff.FullNameAr,
		&staff.Department,
		&staff.IsActive,
		&staff.AddedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}
