// Package memstore is an in-memory implementation of the repository
// interfaces. A transaction works on a private copy of the committed state
// and swaps it in on commit. Transactions and writes made outside one are
// serialised; reads outside a transaction only see committed state.
package memstore

import (
	"context"
	"sync"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/repository"
)

type seqKey struct {
	prefix domain.RecordPrefix
	year   int
}

type state struct {
	lastID        int64
	sequences     map[seqKey]int
	leaves        map[int64]domain.LeaveRequest
	cars          map[int64]domain.Car
	bookings      map[int64]domain.CarBooking
	categories    map[int64]domain.HelpDeskCategory
	staff         map[int64]domain.HelpDeskStaff
	tickets       map[int64]domain.Ticket
	messages      map[int64]domain.TicketMessage
	notifications map[int64]domain.Notification
}

func newState() *state {
	return &state{
		sequences:     map[seqKey]int{},
		leaves:        map[int64]domain.LeaveRequest{},
		cars:          map[int64]domain.Car{},
		bookings:      map[int64]domain.CarBooking{},
		categories:    map[int64]domain.HelpDeskCategory{},
		staff:         map[int64]domain.HelpDeskStaff{},
		tickets:       map[int64]domain.Ticket{},
		messages:      map[int64]domain.TicketMessage{},
		notifications: map[int64]domain.Notification{},
	}
}

func (s *state) clone() *state {
	c := &state{lastID: s.lastID}
	c.sequences = cloneMap(s.sequences)
	c.leaves = cloneMap(s.leaves)
	c.cars = cloneMap(s.cars)
	c.bookings = cloneMap(s.bookings)
	c.categories = cloneMap(s.categories)
	c.staff = cloneMap(s.staff)
	c.tickets = cloneMap(s.tickets)
	c.messages = cloneMap(s.messages)
	c.notifications = cloneMap(s.notifications)
	return c
}

func (s *state) nextID() int64 {
	s.lastID++
	return s.lastID
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DB holds the in-memory tables.
type DB struct {
	// txMu serialises transactions and writes made outside one.
	txMu sync.Mutex
	// mu guards data and notifyErr.
	mu   sync.RWMutex
	data *state

	// notifyErr, when set, fails every notification insert.
	notifyErr error
}

type txKey struct{}

type tx struct {
	data *state
}

// New returns an empty database.
func New() *DB {
	return &DB{data: newState()}
}

// Store exposes the database through the repository interfaces.
func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Tx:            db,
		Sequences:     &sequenceRepo{db},
		Leaves:        &leaveRepo{db},
		Cars:          &carRepo{db},
		Bookings:      &bookingRepo{db},
		Categories:    &categoryRepo{db},
		Staff:         &staffRepo{db},
		Tickets:       &ticketRepo{db},
		Messages:      &messageRepo{db},
		Notifications: &notificationRepo{db},
	}
}

// FailNotificationInserts makes notification inserts return err until
// called again with nil.
func (db *DB) FailNotificationInserts(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.notifyErr = err
}

func (db *DB) insertError() error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.notifyErr
}

// WithinTx implements repository.TxManager. A nested call joins the
// enclosing transaction.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	t := &tx{data: db.data.clone()}
	db.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	db.mu.Lock()
	db.data = t.data
	db.mu.Unlock()
	return nil
}

func txFrom(ctx context.Context) *tx {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

func (db *DB) read(ctx context.Context, fn func(s *state) error) error {
	if t := txFrom(ctx); t != nil {
		return fn(t.data)
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn(db.data)
}

// write outside a transaction applies fn to a copy and publishes it only
// when fn succeeds.
func (db *DB) write(ctx context.Context, fn func(s *state) error) error {
	if t := txFrom(ctx); t != nil {
		return fn(t.data)
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	next := db.data.clone()
	db.mu.RUnlock()
	if err := fn(next); err != nil {
		return err
	}
	db.mu.Lock()
	db.data = next
	db.mu.Unlock()
	return nil
}
