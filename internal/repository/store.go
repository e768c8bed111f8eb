package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Store bundles every repository with the transaction manager they share.
type Store struct {
	Tx            TxManager
	Sequences     SequenceRepository
	Leaves        LeaveRepository
	Cars          CarRepository
	Bookings      BookingRepository
	Categories    CategoryRepository
	Staff         StaffRepository
	Tickets       TicketRepository
	Messages      TicketMessageRepository
	Notifications NotificationRepository
}

// NewPostgresStore wires the pgx repositories over one pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Tx:            NewTxManager(pool),
		Sequences:     NewSequenceRepository(pool),
		Leaves:        NewLeaveRepository(pool),
		Cars:          NewCarRepository(pool),
		Bookings:      NewBookingRepository(pool),
		Categories:    NewCategoryRepository(pool),
		Staff:         NewStaffRepository(pool),
		Tickets:       NewTicketRepository(pool),
		Messages:      NewTicketMessageRepository(pool),
		Notifications: NewNotificationRepository(pool),
	}
}
