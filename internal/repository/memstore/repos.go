package memstore

import (
	"context"
	"sort"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/repository"
)

type sequenceRepo struct{ db *DB }

func (r *sequenceRepo) Next(ctx context.Context, prefix domain.RecordPrefix, year int) (int, error) {
	var next int
	err := r.db.write(ctx, func(s *state) error {
		key := seqKey{prefix: prefix, year: year}
		s.sequences[key]++
		next = s.sequences[key]
		return nil
	})
	return next, err
}

type leaveRepo struct{ db *DB }

func (r *leaveRepo) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	return r.db.write(ctx, func(s *state) error {
		for _, existing := range s.leaves {
			if existing.RequestNumber == leave.RequestNumber {
				return repository.ErrDuplicate
			}
		}
		leave.ID = s.nextID()
		leave.UpdatedAt = leave.CreatedAt
		s.leaves[leave.ID] = *leave
		return nil
	})
}

func (r *leaveRepo) Update(ctx context.Context, leave *domain.LeaveRequest) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.leaves[leave.ID]; !ok {
			return repository.ErrNotFound
		}
		s.leaves[leave.ID] = *leave
		return nil
	})
}

func (r *leaveRepo) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	err := r.db.read(ctx, func(s *state) error {
		leave, ok := s.leaves[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = leave
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *leaveRepo) GetForUpdate(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *leaveRepo) List(ctx context.Context, filter repository.LeaveFilter) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	_ = r.db.read(ctx, func(s *state) error {
		for _, leave := range s.leaves {
			if filter.EmployeeUsername != "" && leave.EmployeeUsername != filter.EmployeeUsername {
				continue
			}
			if filter.Status != "" && leave.Status != filter.Status {
				continue
			}
			out = append(out, leave)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return limit(out, filter.Limit), nil
}

type carRepo struct{ db *DB }

func (r *carRepo) Create(ctx context.Context, car *domain.Car) error {
	return r.db.write(ctx, func(s *state) error {
		for _, existing := range s.cars {
			if existing.PlateNumber == car.PlateNumber {
				return repository.ErrDuplicate
			}
		}
		car.ID = s.nextID()
		s.cars[car.ID] = *car
		return nil
	})
}

func (r *carRepo) Update(ctx context.Context, car *domain.Car) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.cars[car.ID]; !ok {
			return repository.ErrNotFound
		}
		for _, existing := range s.cars {
			if existing.ID != car.ID && existing.PlateNumber == car.PlateNumber {
				return repository.ErrDuplicate
			}
		}
		s.cars[car.ID] = *car
		return nil
	})
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	var out domain.Car
	err := r.db.read(ctx, func(s *state) error {
		car, ok := s.cars[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = car
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *carRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	return r.GetByID(ctx, id)
}

func (r *carRepo) List(ctx context.Context, activeOnly bool) ([]domain.Car, error) {
	var out []domain.Car
	_ = r.db.read(ctx, func(s *state) error {
		for _, car := range s.cars {
			if activeOnly && !car.IsActive {
				continue
			}
			out = append(out, car)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Make != out[j].Make {
			return out[i].Make < out[j].Make
		}
		if out[i].Model != out[j].Model {
			return out[i].Model < out[j].Model
		}
		return out[i].PlateNumber < out[j].PlateNumber
	})
	return out, nil
}

type bookingRepo struct{ db *DB }

func (r *bookingRepo) Create(ctx context.Context, b *domain.CarBooking) error {
	return r.db.write(ctx, func(s *state) error {
		for _, existing := range s.bookings {
			if existing.BookingNumber == b.BookingNumber {
				return repository.ErrDuplicate
			}
			if b.Status.Active() && existing.CarID == b.CarID && existing.Status.Active() {
				return repository.ErrDuplicate
			}
		}
		b.ID = s.nextID()
		b.UpdatedAt = b.CreatedAt
		s.bookings[b.ID] = *b
		return nil
	})
}

func (r *bookingRepo) Update(ctx context.Context, b *domain.CarBooking) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.bookings[b.ID]; !ok {
			return repository.ErrNotFound
		}
		if b.Status.Active() {
			for _, existing := range s.bookings {
				if existing.ID != b.ID && existing.CarID == b.CarID && existing.Status.Active() {
					return repository.ErrDuplicate
				}
			}
		}
		s.bookings[b.ID] = *b
		return nil
	})
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*domain.CarBooking, error) {
	var out domain.CarBooking
	err := r.db.read(ctx, func(s *state) error {
		b, ok := s.bookings[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]domain.CarBooking, error) {
	var out []domain.CarBooking
	_ = r.db.read(ctx, func(s *state) error {
		for _, b := range s.bookings {
			if filter.CarID != 0 && b.CarID != filter.CarID {
				continue
			}
			if filter.EmployeeUsername != "" && b.EmployeeUsername != filter.EmployeeUsername {
				continue
			}
			if len(filter.Statuses) > 0 && !contains(filter.Statuses, b.Status) {
				continue
			}
			out = append(out, b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return limit(out, filter.Limit), nil
}

type categoryRepo struct{ db *DB }

func (r *categoryRepo) Create(ctx context.Context, c *domain.HelpDeskCategory) error {
	return r.db.write(ctx, func(s *state) error {
		c.ID = s.nextID()
		s.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.HelpDeskCategory) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.categories[c.ID]; !ok {
			return repository.ErrNotFound
		}
		s.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*domain.HelpDeskCategory, error) {
	var out domain.HelpDeskCategory
	err := r.db.read(ctx, func(s *state) error {
		c, ok := s.categories[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *categoryRepo) List(ctx context.Context, activeOnly bool) ([]domain.HelpDeskCategory, error) {
	var out []domain.HelpDeskCategory
	_ = r.db.read(ctx, func(s *state) error {
		for _, c := range s.categories {
			if activeOnly && !c.IsActive {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Department != out[j].Department {
			return out[i].Department < out[j].Department
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type staffRepo struct{ db *DB }

func (r *staffRepo) Create(ctx context.Context, m *domain.HelpDeskStaff) error {
	return r.db.write(ctx, func(s *state) error {
		for _, existing := range s.staff {
			if existing.Username == m.Username {
				return repository.ErrDuplicate
			}
		}
		m.ID = s.nextID()
		s.staff[m.ID] = *m
		return nil
	})
}

func (r *staffRepo) Update(ctx context.Context, m *domain.HelpDeskStaff) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.staff[m.ID]; !ok {
			return repository.ErrNotFound
		}
		s.staff[m.ID] = *m
		return nil
	})
}

func (r *staffRepo) GetByID(ctx context.Context, id int64) (*domain.HelpDeskStaff, error) {
	return r.find(ctx, func(m domain.HelpDeskStaff) bool { return m.ID == id })
}

func (r *staffRepo) GetByUsername(ctx context.Context, username string) (*domain.HelpDeskStaff, error) {
	return r.find(ctx, func(m domain.HelpDeskStaff) bool { return m.Username == username })
}

func (r *staffRepo) find(ctx context.Context, match func(domain.HelpDeskStaff) bool) (*domain.HelpDeskStaff, error) {
	var out *domain.HelpDeskStaff
	_ = r.db.read(ctx, func(s *state) error {
		for _, m := range s.staff {
			if match(m) {
				found := m
				out = &found
				return nil
			}
		}
		return nil
	})
	if out == nil {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (r *staffRepo) List(ctx context.Context, filter repository.StaffFilter) ([]domain.HelpDeskStaff, error) {
	var out []domain.HelpDeskStaff
	_ = r.db.read(ctx, func(s *state) error {
		for _, m := range s.staff {
			if filter.Department != nil && m.Department != *filter.Department {
				continue
			}
			if filter.Active != nil && m.IsActive != *filter.Active {
				continue
			}
			out = append(out, m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Department != out[j].Department {
			return out[i].Department < out[j].Department
		}
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type ticketRepo struct{ db *DB }

func (r *ticketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.categories[t.CategoryID]; !ok {
			return repository.ErrNotFound
		}
		for _, existing := range s.tickets {
			if existing.TicketNumber == t.TicketNumber {
				return repository.ErrDuplicate
			}
		}
		t.ID = s.nextID()
		t.UpdatedAt = t.CreatedAt
		s.tickets[t.ID] = *t
		return nil
	})
}

func (r *ticketRepo) Update(ctx context.Context, t *domain.Ticket) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.tickets[t.ID]; !ok {
			return repository.ErrNotFound
		}
		s.tickets[t.ID] = *t
		return nil
	})
}

func (r *ticketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var out domain.Ticket
	err := r.db.read(ctx, func(s *state) error {
		t, ok := s.tickets[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ticketRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r *ticketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	_ = r.db.read(ctx, func(s *state) error {
		for _, t := range s.tickets {
			if filter.CreatedBy != nil && t.CreatedByUsername != *filter.CreatedBy {
				continue
			}
			if filter.Department != nil && s.categories[t.CategoryID].Department != *filter.Department {
				continue
			}
			if filter.CategoryID != nil && t.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.AssignedTo != nil && t.AssignedToUsername != *filter.AssignedTo {
				continue
			}
			if len(filter.Statuses) > 0 && !contains(filter.Statuses, t.Status) {
				continue
			}
			if len(filter.Priorities) > 0 && !contains(filter.Priorities, t.Priority) {
				continue
			}
			out = append(out, t)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	return limit(out, filter.Limit), nil
}

type messageRepo struct{ db *DB }

func (r *messageRepo) Create(ctx context.Context, m *domain.TicketMessage) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.tickets[m.TicketID]; !ok {
			return repository.ErrNotFound
		}
		m.ID = s.nextID()
		s.messages[m.ID] = *m
		return nil
	})
}

func (r *messageRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketMessage, error) {
	var out []domain.TicketMessage
	_ = r.db.read(ctx, func(s *state) error {
		for _, m := range s.messages {
			if m.TicketID == ticketID {
				out = append(out, m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type notificationRepo struct{ db *DB }

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if err := r.db.insertError(); err != nil {
		return err
	}
	return r.db.write(ctx, func(s *state) error {
		n.ID = s.nextID()
		s.notifications[n.ID] = *n
		return nil
	})
}

func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var out domain.Notification
	err := r.db.read(ctx, func(s *state) error {
		n, ok := s.notifications[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, username string, n int) ([]domain.Notification, error) {
	var out []domain.Notification
	_ = r.db.read(ctx, func(s *state) error {
		for _, n := range s.notifications {
			if n.RecipientUsername == username {
				out = append(out, n)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if n <= 0 {
		n = 50
	}
	return limit(out, n), nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int64) error {
	return r.db.write(ctx, func(s *state) error {
		n, ok := s.notifications[id]
		if !ok {
			return repository.ErrNotFound
		}
		n.IsRead = true
		s.notifications[id] = n
		return nil
	})
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.write(ctx, func(s *state) error {
		for id, n := range s.notifications {
			if n.RecipientUsername == username && !n.IsRead {
				n.IsRead = true
				s.notifications[id] = n
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *notificationRepo) CountUnread(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.read(ctx, func(s *state) error {
		for _, n := range s.notifications {
			if n.RecipientUsername == username && !n.IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func limit[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
