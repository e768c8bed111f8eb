package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"gorm.io/gorm"
)

// Projection reads report rows. It never writes.
type Projection interface {
	ListLeaveRequests(ctx context.Context, f Filter) ([]LeaveRow, error)
	ListBookings(ctx context.Context, f Filter) ([]BookingRow, error)
	ListTickets(ctx context.Context, f Filter) ([]TicketRow, error)
	ListDistinctGroupValues(ctx context.Context, entity Entity, dimension Dimension) ([]Option, error)
}

type gormProjection struct {
	db *gorm.DB
}

// NewProjection builds a Projection over the record store's database.
func NewProjection(db *gorm.DB) Projection {
	return &gormProjection{db: db}
}

func (p *gormProjection) ListLeaveRequests(ctx context.Context, f Filter) ([]LeaveRow, error) {
	var rows []LeaveRow
	if err := leaveQuery(p.db.WithContext(ctx), f.Normalize(EntityLeave)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query leave report: %w", err)
	}
	return rows, nil
}

func (p *gormProjection) ListBookings(ctx context.Context, f Filter) ([]BookingRow, error) {
	var rows []BookingRow
	if err := bookingQuery(p.db.WithContext(ctx), f.Normalize(EntityBooking)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query booking report: %w", err)
	}
	return rows, nil
}

func (p *gormProjection) ListTickets(ctx context.Context, f Filter) ([]TicketRow, error) {
	var rows []TicketRow
	if err := ticketQuery(p.db.WithContext(ctx), f.Normalize(EntityTicket)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query ticket report: %w", err)
	}
	return rows, nil
}

func (p *gormProjection) ListDistinctGroupValues(ctx context.Context, entity Entity, dimension Dimension) ([]Option, error) {
	q := optionsQuery(p.db.WithContext(ctx), entity, dimension)
	if q == nil {
		return []Option{}, nil
	}
	var options []Option
	if err := q.Scan(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s options: %w", dimension, err)
	}
	sortOptions(options)
	return options, nil
}

func leaveQuery(db *gorm.DB, f Filter) *gorm.DB {
	q := db.Model(&LeaveRow{})
	if id, ok := f.Selected(); ok {
		switch f.Dimension {
		case DimensionEmployee:
			q = q.Where("employee_username = ?", id)
		case DimensionDepartment:
			q = q.Where("employee_department = ?", id)
		case DimensionManager:
			q = q.Where("manager_name = ?", id)
		}
	}
	if status, ok := f.StatusValue(); ok {
		q = q.Where("status = ?", status)
	}
	q = dateBounds(q, "departure_datetime", f)
	return q.Order("departure_datetime DESC")
}

func bookingQuery(db *gorm.DB, f Filter) *gorm.DB {
	q := db.Model(&BookingRow{})
	if id, ok := f.Selected(); ok {
		switch f.Dimension {
		case DimensionCar:
			carID, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				carID = -1
			}
			q = q.Where("car_id = ?", carID)
		case DimensionUser:
			q = q.Where("employee_username = ?", id)
		}
	}
	if status, ok := f.StatusValue(); ok {
		q = q.Where("status = ?", status)
	}
	q = dateBounds(q, "planned_departure", f)
	return q.Order("planned_departure DESC")
}

func ticketQuery(db *gorm.DB, f Filter) *gorm.DB {
	q := db.Model(&TicketRow{})
	if id, ok := f.Selected(); ok {
		switch f.Dimension {
		case DimensionCategory:
			categoryID, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				categoryID = -1
			}
			q = q.Where("category_id = ?", categoryID)
		case DimensionRequester:
			q = q.Where("created_by_username = ?", id)
		case DimensionStaff:
			q = q.Where("assigned_to_username = ?", id)
		}
	}
	if status, ok := f.StatusValue(); ok {
		q = q.Where("status = ?", status)
	}
	if priority, ok := f.PriorityValue(); ok {
		q = q.Where("priority = ?", priority)
	}
	q = dateBounds(q, "created_at", f)
	return q.Order("created_at DESC")
}

func dateBounds(q *gorm.DB, column string, f Filter) *gorm.DB {
	if from := f.From(); from != nil {
		q = q.Where(column+" >= ?", *from)
	}
	if to := f.To(); to != nil {
		q = q.Where(column+" <= ?", *to)
	}
	return q
}

// optionsQuery returns nil for dimensions the entity does not have.
func optionsQuery(db *gorm.DB, entity Entity, dimension Dimension) *gorm.DB {
	switch {
	case entity == EntityLeave && dimension == DimensionEmployee:
		return db.Table("leave_requests").
			Select("DISTINCT ON (employee_username) employee_username AS id, employee_name AS label, employee_name_ar AS label_ar").
			Order("employee_username, created_at DESC")
	case entity == EntityLeave && dimension == DimensionDepartment:
		return db.Table("leave_requests").
			Select("DISTINCT ON (employee_department) employee_department AS id, employee_department AS label, employee_department_ar AS label_ar").
			Where("employee_department <> ''").
			Order("employee_department")
	case entity == EntityLeave && dimension == DimensionManager:
		return db.Table("leave_requests").
			Select("DISTINCT ON (manager_name) manager_name AS id, manager_name AS label, manager_name_ar AS label_ar").
			Where("manager_name <> ''").
			Order("manager_name")
	case entity == EntityBooking && dimension == DimensionCar:
		return db.Table("cars").
			Select("CAST(id AS TEXT) AS id, CONCAT(year, ' ', make, ' ', model, ' - ', plate_number) AS label, plate_number_ar AS label_ar").
			Order("plate_number")
	case entity == EntityBooking && dimension == DimensionUser:
		return db.Table("car_bookings").
			Select("DISTINCT ON (employee_username) employee_username AS id, employee_name AS label, employee_name_ar AS label_ar").
			Order("employee_username, created_at DESC")
	case entity == EntityTicket && dimension == DimensionCategory:
		return db.Table("helpdesk_categories").
			Select("CAST(id AS TEXT) AS id, name AS label, name_ar AS label_ar").
			Order("name")
	case entity == EntityTicket && dimension == DimensionRequester:
		return db.Table("helpdesk_tickets").
			Select("DISTINCT ON (created_by_username) created_by_username AS id, created_by_name AS label, created_by_name_ar AS label_ar").
			Order("created_by_username, created_at DESC")
	case entity == EntityTicket && dimension == DimensionStaff:
		return db.Table("helpdesk_staff").
			Select("username AS id, full_name AS label, full_name_ar AS label_ar").
			Order("full_name")
	}
	return nil
}

func sortOptions(options []Option) {
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Label < options[j].Label
	})
}
