package report

import (
	"context"
	"sort"
	"strconv"

	"github.com/Behnamfe76/officedesk/internal/repository"
)

// storeProjection answers report queries from the record store's own
// repositories. It backs reports when no SQL database is configured.
type storeProjection struct {
	store *repository.Store
}

// NewStoreProjection builds a Projection over store.
func NewStoreProjection(store *repository.Store) Projection {
	return &storeProjection{store: store}
}

func (p *storeProjection) ListLeaveRequests(ctx context.Context, f Filter) ([]LeaveRow, error) {
	f = f.Normalize(EntityLeave)
	leaves, err := p.store.Leaves.List(ctx, repository.LeaveFilter{})
	if err != nil {
		return nil, err
	}
	id, selected := f.Selected()
	status, byStatus := f.StatusValue()
	rows := []LeaveRow{}
	for _, l := range leaves {
		row := leaveRowFrom(l)
		if selected {
			switch f.Dimension {
			case DimensionEmployee:
				if row.EmployeeUsername != id {
					continue
				}
			case DimensionDepartment:
				if row.EmployeeDepartment != id {
					continue
				}
			case DimensionManager:
				if row.ManagerName != id {
					continue
				}
			}
		}
		if byStatus && row.Status != status {
			continue
		}
		if !f.Within(row.DepartureAt) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DepartureAt.After(rows[j].DepartureAt) })
	return rows, nil
}

func (p *storeProjection) ListBookings(ctx context.Context, f Filter) ([]BookingRow, error) {
	f = f.Normalize(EntityBooking)
	bookings, err := p.store.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}
	id, selected := f.Selected()
	status, byStatus := f.StatusValue()
	rows := []BookingRow{}
	for _, b := range bookings {
		row := bookingRowFrom(b)
		if selected {
			switch f.Dimension {
			case DimensionCar:
				if strconv.FormatInt(row.CarID, 10) != id {
					continue
				}
			case DimensionUser:
				if row.EmployeeUsername != id {
					continue
				}
			}
		}
		if byStatus && row.Status != status {
			continue
		}
		if !f.Within(row.PlannedDeparture) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PlannedDeparture.After(rows[j].PlannedDeparture) })
	return rows, nil
}

func (p *storeProjection) ListTickets(ctx context.Context, f Filter) ([]TicketRow, error) {
	f = f.Normalize(EntityTicket)
	tickets, err := p.store.Tickets.ListWithFilter(ctx, repository.TicketFilter{Limit: 1 << 30})
	if err != nil {
		return nil, err
	}
	id, selected := f.Selected()
	status, byStatus := f.StatusValue()
	priority, byPriority := f.PriorityValue()
	rows := []TicketRow{}
	for _, t := range tickets {
		row := ticketRowFrom(t)
		if selected {
			switch f.Dimension {
			case DimensionCategory:
				if strconv.FormatInt(row.CategoryID, 10) != id {
					continue
				}
			case DimensionRequester:
				if row.CreatedByUsername != id {
					continue
				}
			case DimensionStaff:
				if row.AssignedToUsername != id {
					continue
				}
			}
		}
		if byStatus && row.Status != status {
			continue
		}
		if byPriority && row.Priority != priority {
			continue
		}
		if !f.Within(row.CreatedAt) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (p *storeProjection) ListDistinctGroupValues(ctx context.Context, entity Entity, dimension Dimension) ([]Option, error) {
	options := []Option{}
	seen := map[string]struct{}{}
	add := func(id, label, labelAr string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		options = append(options, Option{ID: id, Label: label, LabelAr: labelAr})
	}

	switch entity {
	case EntityLeave:
		leaves, err := p.store.Leaves.List(ctx, repository.LeaveFilter{})
		if err != nil {
			return nil, err
		}
		for _, l := range leaves {
			switch dimension {
			case DimensionEmployee:
				add(l.EmployeeUsername, l.EmployeeName, l.EmployeeNameAr)
			case DimensionDepartment:
				add(l.EmployeeDepartment, l.EmployeeDepartment, l.EmployeeDepartmentAr)
			case DimensionManager:
				add(l.ManagerName, l.ManagerName, l.ManagerNameAr)
			}
		}
	case EntityBooking:
		if dimension == DimensionCar {
			cars, err := p.store.Cars.List(ctx, false)
			if err != nil {
				return nil, err
			}
			for _, c := range cars {
				add(strconv.FormatInt(c.ID, 10), c.DisplayName(), c.PlateNumberAr)
			}
			break
		}
		bookings, err := p.store.Bookings.List(ctx, repository.BookingFilter{})
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			if dimension == DimensionUser {
				add(b.EmployeeUsername, b.EmployeeName, b.EmployeeNameAr)
			}
		}
	case EntityTicket:
		switch dimension {
		case DimensionCategory:
			categories, err := p.store.Categories.List(ctx, false)
			if err != nil {
				return nil, err
			}
			for _, c := range categories {
				add(strconv.FormatInt(c.ID, 10), c.Name, c.NameAr)
			}
		case DimensionRequester:
			tickets, err := p.store.Tickets.ListWithFilter(ctx, repository.TicketFilter{Limit: 1 << 30})
			if err != nil {
				return nil, err
			}
			for _, t := range tickets {
				add(t.CreatedByUsername, t.CreatedByName, t.CreatedByNameAr)
			}
		case DimensionStaff:
			staff, err := p.store.Staff.List(ctx, repository.StaffFilter{})
			if err != nil {
				return nil, err
			}
			for _, s := range staff {
				add(s.Username, s.FullName, s.FullNameAr)
			}
		}
	}
	sortOptions(options)
	return options, nil
}
