package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// LeaveFilter narrows leave listings. Zero values mean no filter.
type LeaveFilter struct {
	EmployeeUsername string
	Status           domain.LeaveStatus
	Limit            int
}

// LeaveRepository persists leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	Update(ctx context.Context, leave *domain.LeaveRequest) error
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	// GetForUpdate loads the row and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository builds repository.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

const leaveColumns = `id, request_number, employee_username, employee_name, employee_name_ar,
        employee_department, employee_department_ar, employee_number, active_language,
        reason_en, reason_ar, destination_en, destination_ar, manager_name, manager_name_ar,
        departure_datetime, return_datetime, status, printed_at, created_at, updated_at`

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (request_number, employee_username, employee_name, employee_name_ar,
            employee_department, employee_department_ar, employee_number, active_language,
            reason_en, reason_ar, destination_en, destination_ar, manager_name, manager_name_ar,
            departure_datetime, return_datetime, status, printed_at, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$19)
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		leave.RequestNumber,
		leave.EmployeeUsername,
		leave.EmployeeName,
		leave.EmployeeNameAr,
		leave.EmployeeDepartment,
		leave.EmployeeDepartmentAr,
		leave.EmployeeNumber,
		string(leave.Reason.Language()),
		leave.Reason.English(),
		leave.Reason.Arabic(),
		leave.Destination.EN,
		leave.Destination.AR,
		leave.ManagerName,
		leave.ManagerNameAr,
		leave.DepartureAt,
		leave.ReturnAt,
		leave.Status,
		leave.PrintedAt,
		leave.CreatedAt,
	).Scan(&leave.ID)
	if err != nil {
		return translate(err)
	}
	leave.UpdatedAt = leave.CreatedAt
	return nil
}

func (r *leaveRepository) Update(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        UPDATE leave_requests SET active_language=$1, reason_en=$2, reason_ar=$3,
            destination_en=$4, destination_ar=$5, manager_name=$6, manager_name_ar=$7,
            departure_datetime=$8, return_datetime=$9, status=$10, printed_at=$11, updated_at=$12
        WHERE id=$13`
	return execOne(ctx, conn(ctx, r.pool), query,
		string(leave.Reason.Language()),
		leave.Reason.English(),
		leave.Reason.Arabic(),
		leave.Destination.EN,
		leave.Destination.AR,
		leave.ManagerName,
		leave.ManagerNameAr,
		leave.DepartureAt,
		leave.ReturnAt,
		leave.Status,
		leave.PrintedAt,
		leave.UpdatedAt,
		leave.ID,
	)
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id=$1`
	return scanLeave(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *leaveRepository) GetForUpdate(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id=$1 FOR UPDATE`
	return scanLeave(conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeUsername != "" {
		args = append(args, filter.EmployeeUsername)
		clauses = append(clauses, fmt.Sprintf("employee_username=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE %s ORDER BY created_at DESC, id DESC`,
		leaveColumns, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *leave)
	}
	return result, rows.Err()
}

func scanLeave(row pgx.Row) (*domain.LeaveRequest, error) {
	var (
		leave              domain.LeaveRequest
		lang               string
		reasonEN, reasonAR string
	)
	if err := row.Scan(
		&leave.ID,
		&leave.RequestNumber,
		&leave.EmployeeUsername,
		&leave.EmployeeName,
		&leave.EmployeeNameAr,
		&leave.EmployeeDepartment,
		&leave.EmployeeDepartmentAr,
		&leave.EmployeeNumber,
		&lang,
		&reasonEN,
		&reasonAR,
		&leave.Destination.EN,
		&leave.Destination.AR,
		&leave.ManagerName,
		&leave.ManagerNameAr,
		&leave.DepartureAt,
		&leave.ReturnAt,
		&leave.Status,
		&leave.PrintedAt,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	leave.Reason = domain.ContentFor(domain.Language(lang), reasonEN, reasonAR)
	return &leave, nil
}
