package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// LeaveStats summarises a leave report.
type LeaveStats struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"by_status"`
	AvgDurationDays float64        `json:"avg_duration_days"`
}

// LeaveReport is a rendered leave report.
type LeaveReport struct {
	Title   string     `json:"title"`
	Filter  Filter     `json:"filter"`
	Rows    []LeaveRow `json:"rows"`
	Stats   LeaveStats `json:"stats"`
	Options []Option   `json:"options"`
}

// BookingReport is a rendered booking report.
type BookingReport struct {
	Title   string       `json:"title"`
	Filter  Filter       `json:"filter"`
	Rows    []BookingRow `json:"rows"`
	Options []Option     `json:"options"`
}

// TicketReport is a rendered help-desk report.
type TicketReport struct {
	Title   string         `json:"title"`
	Filter  Filter         `json:"filter"`
	Rows    []TicketRow    `json:"rows"`
	Counts  map[string]int `json:"counts"`
	Options []Option       `json:"options"`
}

// Service builds reports on top of a Projection.
type Service struct {
	projection Projection
	logger     *zap.Logger
}

// NewService constructs the report service.
func NewService(projection Projection, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{projection: projection, logger: logger}
}

// Leave builds the leave report.
func (s *Service) Leave(ctx context.Context, f Filter) (*LeaveReport, error) {
	f = f.Normalize(EntityLeave)
	rows, err := s.projection.ListLeaveRequests(ctx, f)
	if err != nil {
		return nil, err
	}
	options, err := s.projection.ListDistinctGroupValues(ctx, EntityLeave, f.Dimension)
	if err != nil {
		return nil, err
	}
	title := s.title(f, options, func() string {
		if len(rows) > 0 && f.Dimension == DimensionEmployee {
			return rows[0].EmployeeName
		}
		return ""
	})
	return &LeaveReport{Title: title, Filter: f, Rows: rows, Stats: ComputeLeaveStats(rows), Options: options}, nil
}

// Bookings builds the car booking report.
func (s *Service) Bookings(ctx context.Context, f Filter) (*BookingReport, error) {
	f = f.Normalize(EntityBooking)
	rows, err := s.projection.ListBookings(ctx, f)
	if err != nil {
		return nil, err
	}
	options, err := s.projection.ListDistinctGroupValues(ctx, EntityBooking, f.Dimension)
	if err != nil {
		return nil, err
	}
	title := s.title(f, options, func() string {
		if len(rows) > 0 && f.Dimension == DimensionUser {
			return rows[0].EmployeeName
		}
		return ""
	})
	return &BookingReport{Title: title, Filter: f, Rows: rows, Options: options}, nil
}

// Tickets builds the help-desk report.
func (s *Service) Tickets(ctx context.Context, f Filter) (*TicketReport, error) {
	f = f.Normalize(EntityTicket)
	rows, err := s.projection.ListTickets(ctx, f)
	if err != nil {
		return nil, err
	}
	options, err := s.projection.ListDistinctGroupValues(ctx, EntityTicket, f.Dimension)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(domain.TicketStatuses))
	for _, st := range domain.TicketStatuses {
		counts[string(st)] = 0
	}
	for _, r := range rows {
		counts[r.Status]++
	}
	title := s.title(f, options, func() string { return "" })
	return &TicketReport{Title: title, Filter: f, Rows: rows, Counts: counts, Options: options}, nil
}

// Options lists the selectable values of a dimension.
func (s *Service) Options(ctx context.Context, entity Entity, dimension Dimension) ([]Option, error) {
	return s.projection.ListDistinctGroupValues(ctx, entity, dimension)
}

// ComputeLeaveStats counts rows per status and averages duration in days,
// rounded to one decimal.
func ComputeLeaveStats(rows []LeaveRow) LeaveStats {
	stats := LeaveStats{Total: len(rows), ByStatus: map[string]int{}}
	for _, st := range []domain.LeaveStatus{domain.LeaveStatusDraft, domain.LeaveStatusPending, domain.LeaveStatusApproved, domain.LeaveStatusArchived} {
		stats.ByStatus[string(st)] = 0
	}
	if len(rows) == 0 {
		return stats
	}
	var total float64
	for _, r := range rows {
		stats.ByStatus[r.Status]++
		total += r.DurationDays()
	}
	stats.AvgDurationDays = roundTenth(total / float64(len(rows)))
	return stats
}

// title names the selected group. named supplies a display name taken from
// the result rows, used before falling back to the option list.
func (s *Service) title(f Filter, options []Option, named func() string) string {
	id, ok := f.Selected()
	if !ok {
		return allTitles[f.Dimension]
	}
	switch f.Dimension {
	case DimensionEmployee, DimensionUser:
		if name := named(); name != "" {
			return fmt.Sprintf("%s (%s)", name, id)
		}
	case DimensionDepartment, DimensionManager:
		return id
	}
	for _, o := range options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

var allTitles = map[Dimension]string{
	DimensionEmployee:   "All Employees",
	DimensionDepartment: "All Departments",
	DimensionManager:    "All Managers",
	DimensionCar:        "All Vehicles",
	DimensionUser:       "All Employees",
	DimensionCategory:   "All Categories",
	DimensionRequester:  "All Requesters",
	DimensionStaff:      "All Staff",
}
