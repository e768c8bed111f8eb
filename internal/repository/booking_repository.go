package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// BookingFilter narrows booking listings. Zero values mean no filter.
type BookingFilter struct {
	CarID            int64
	EmployeeUsername string
	Statuses         []domain.BookingStatus
	Limit            int
}

// BookingRepository persists car bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.CarBooking) error
	Update(ctx context.Context, booking *domain.CarBooking) error
	GetByID(ctx context.Context, id int64) (*domain.CarBooking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.CarBooking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository builds repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, booking_number, car_id, employee_username, employee_name, employee_name_ar,
        employee_department, employee_department_ar, employee_number, destination_en, destination_ar,
        purpose_en, purpose_ar, manager_name, manager_name_ar, planned_departure, actual_departure,
        actual_return, odometer_return, return_note, active_language, status, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, b *domain.CarBooking) error {
	const query = `
        INSERT INTO car_bookings (booking_number, car_id, employee_username, employee_name, employee_name_ar,
            employee_department, employee_department_ar, employee_number, destination_en, destination_ar,
            purpose_en, purpose_ar, manager_name, manager_name_ar, planned_departure, active_language,
            status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$18)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		b.BookingNumber,
		b.CarID,
		b.EmployeeUsername,
		b.EmployeeName,
		b.EmployeeNameAr,
		b.EmployeeDepartment,
		b.EmployeeDepartmentAr,
		b.EmployeeNumber,
		b.Destination.EN,
		b.Destination.AR,
		b.Purpose.EN,
		b.Purpose.AR,
		b.ManagerName,
		b.ManagerNameAr,
		b.PlannedDeparture,
		string(b.Language),
		b.Status,
		b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return translate(err)
	}
	b.UpdatedAt = b.CreatedAt
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.CarBooking) error {
	const query = `
        UPDATE car_bookings SET actual_departure=$1, actual_return=$2, odometer_return=$3,
            return_note=$4, status=$5, updated_at=$6
        WHERE id=$7`
	return execOne(ctx, conn(ctx, r.pool), query,
		b.ActualDeparture,
		b.ActualReturn,
		nullDecimal(b.OdometerReturn),
		b.ReturnNote,
		b.Status,
		b.UpdatedAt,
		b.ID,
	)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.CarBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM car_bookings WHERE id=$1`
	return scanBooking(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.CarBooking, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CarID != 0 {
		args = append(args, filter.CarID)
		clauses = append(clauses, fmt.Sprintf("car_id=$%d", len(args)))
	}
	if filter.EmployeeUsername != "" {
		args = append(args, filter.EmployeeUsername)
		clauses = append(clauses, fmt.Sprintf("employee_username=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`SELECT %s FROM car_bookings WHERE %s ORDER BY created_at DESC, id DESC`,
		bookingColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CarBooking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.CarBooking, error) {
	var (
		b        domain.CarBooking
		odometer decimal.NullDecimal
		lang     string
	)
	if err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.CarID,
		&b.EmployeeUsername,
		&b.EmployeeName,
		&b.EmployeeNameAr,
		&b.EmployeeDepartment,
		&b.EmployeeDepartmentAr,
		&b.EmployeeNumber,
		&b.Destination.EN,
		&b.Destination.AR,
		&b.Purpose.EN,
		&b.Purpose.AR,
		&b.ManagerName,
		&b.ManagerNameAr,
		&b.PlannedDeparture,
		&b.ActualDeparture,
		&b.ActualReturn,
		&odometer,
		&b.ReturnNote,
		&lang,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	if odometer.Valid {
		v := odometer.Decimal
		b.OdometerReturn = &v
	}
	b.Language = domain.Language(lang)
	return &b, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
