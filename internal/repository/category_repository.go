package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// CategoryRepository manages help-desk categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.HelpDeskCategory) error
	Update(ctx context.Context, category *domain.HelpDeskCategory) error
	GetByID(ctx context.Context, id int64) (*domain.HelpDeskCategory, error)
	List(ctx context.Context, activeOnly bool) ([]domain.HelpDeskCategory, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new repository instance.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categoryColumns = `id, name, name_ar, department, department_ar, is_active, created_at`

func (r *categoryRepository) Create(ctx context.Context, category *domain.HelpDeskCategory) error {
	const query = `
        INSERT INTO helpdesk_categories (name, name_ar, department, department_ar, is_active, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		category.Name,
		category.NameAr,
		category.Department,
		category.DepartmentAr,
		category.IsActive,
		category.CreatedAt,
	).Scan(&category.ID)
	return translate(err)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.HelpDeskCategory) error {
	const query = `
        UPDATE helpdesk_categories SET name=$1, name_ar=$2, department=$3, department_ar=$4, is_active=$5
        WHERE id=$6`
	return execOne(ctx, conn(ctx, r.pool), query,
		category.Name,
		category.NameAr,
		category.Department,
		category.DepartmentAr,
		category.IsActive,
		category.ID,
	)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.HelpDeskCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM helpdesk_categories WHERE id=$1`
	return scanCategory(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.HelpDeskCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM helpdesk_categories`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY department, name`

	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HelpDeskCategory
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *category)
	}
	return result, rows.Err()
}

func scanCategory(row pgx.Row) (*domain.HelpDeskCategory, error) {
	var category domain.HelpDeskCategory
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.NameAr,
		&category.Department,
		&category.DepartmentAr,
		&category.IsActive,
		&category.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}
