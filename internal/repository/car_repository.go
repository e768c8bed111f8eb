package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// CarRepository persists pool vehicles.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	Update(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	// GetForUpdate locks the car row; booking operations serialise on it.
	GetForUpdate(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Car, error)
}

type carRepository struct {
	pool *pgxpool.Pool
}

// NewCarRepository builds repository.
func NewCarRepository(pool *pgxpool.Pool) CarRepository {
	return &carRepository{pool: pool}
}

const carColumns = `id, plate_number, plate_number_ar, make, model, year, color_en, color_ar, seats,
        plate_image, is_active, current_mileage, last_major_maintenance, last_minor_maintenance,
        registration_expiry, created_at`

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	const query = `
        INSERT INTO cars (plate_number, plate_number_ar, make, model, year, color_en, color_ar, seats,
            plate_image, is_active, current_mileage, last_major_maintenance, last_minor_maintenance,
            registration_expiry, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		car.PlateNumber,
		car.PlateNumberAr,
		car.Make,
		car.Model,
		car.Year,
		car.Color.EN,
		car.Color.AR,
		car.Seats,
		car.PlateImage,
		car.IsActive,
		car.CurrentMileage,
		car.LastMajorMaintenance,
		car.LastMinorMaintenance,
		car.RegistrationExpiry,
		car.CreatedAt,
	).Scan(&car.ID)
	return translate(err)
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	const query = `
        UPDATE cars SET plate_number=$1, plate_number_ar=$2, make=$3, model=$4, year=$5, color_en=$6,
            color_ar=$7, seats=$8, plate_image=$9, is_active=$10, current_mileage=$11,
            last_major_maintenance=$12, last_minor_maintenance=$13, registration_expiry=$14
        WHERE id=$15`
	return execOne(ctx, conn(ctx, r.pool), query,
		car.PlateNumber,
		car.PlateNumberAr,
		car.Make,
		car.Model,
		car.Year,
		car.Color.EN,
		car.Color.AR,
		car.Seats,
		car.PlateImage,
		car.IsActive,
		car.CurrentMileage,
		car.LastMajorMaintenance,
		car.LastMinorMaintenance,
		car.RegistrationExpiry,
		car.ID,
	)
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id=$1`
	return scanCar(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *carRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id=$1 FOR UPDATE`
	return scanCar(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *carRepository) List(ctx context.Context, activeOnly bool) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY make, model, plate_number`

	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *car)
	}
	return result, rows.Err()
}

func scanCar(row pgx.Row) (*domain.Car, error) {
	var car domain.Car
	if err := row.Scan(
		&car.ID,
		&car.PlateNumber,
		&car.PlateNumberAr,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Color.EN,
		&car.Color.AR,
		&car.Seats,
		&car.PlateImage,
		&car.IsActive,
		&car.CurrentMileage,
		&car.LastMajorMaintenance,
		&car.LastMinorMaintenance,
		&car.RegistrationExpiry,
		&car.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &car, nil
}
