package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/internal/repository/memstore"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

var (
	alice = &domain.UserProfile{Username: "alice", FullName: "Alice Adams", Department: "Sales", EmployeeNumber: "E100"}
	bob   = &domain.UserProfile{Username: "bob", FullName: "Bob Brown", Department: "Finance", EmployeeNumber: "E200"}
	sam   = &domain.UserProfile{Username: "sam", FullName: "Sam Support", Department: "IT"}
	lee   = &domain.UserProfile{Username: "lee", FullName: "Lee Level2", Department: "IT"}
	hana  = &domain.UserProfile{Username: "hana", FullName: "Hana HR", Department: "HR"}
	admin = &domain.UserProfile{Username: "root", FullName: "Office Admin", Department: "Admin", IsAdmin: true}
)

type fixture struct {
	ctx   context.Context
	db    *memstore.DB
	store *repository.Store
	deps  Dependencies
	now   time.Time

	mu        sync.Mutex
	published []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memstore.New()
	f := &fixture{
		ctx:   context.Background(),
		db:    db,
		store: db.Store(),
		now:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	dispatcher := events.NewInMemoryDispatcher(nil)
	for _, et := range events.AllEventTypes {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.published = append(f.published, e)
			return nil
		})
	}
	f.deps = Dependencies{
		Store:      f.store,
		Dispatcher: dispatcher,
		Clock:      func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) events() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.published...)
}

func (f *fixture) inbox(t *testing.T, username string) []domain.Notification {
	t.Helper()
	list, err := f.store.Notifications.ListByRecipient(f.ctx, username, 100)
	require.NoError(t, err)
	return list
}

// seedHelpdesk creates an IT and an HR category with sam and lee on IT and
// hana on HR.
func (f *fixture) seedHelpdesk(t *testing.T) (it, hr *domain.HelpDeskCategory) {
	t.Helper()
	svc := NewHelpdeskAdminService(f.deps)
	it, err := svc.AddCategory(f.ctx, admin, CategoryInput{Name: "Hardware", Department: "IT"})
	require.NoError(t, err)
	hr, err = svc.AddCategory(f.ctx, admin, CategoryInput{Name: "Payroll", Department: "HR"})
	require.NoError(t, err)
	for _, in := range []StaffInput{
		{Username: "sam", FullName: "Sam Support", Department: "IT"},
		{Username: "lee", FullName: "Lee Level2", Department: "IT"},
		{Username: "hana", FullName: "Hana HR", Department: "HR"},
	} {
		_, _, err := svc.AddStaff(f.ctx, admin, in)
		require.NoError(t, err)
	}
	return it, hr
}

func (f *fixture) seedCar(t *testing.T, plate, mileage string) *domain.Car {
	t.Helper()
	car, err := NewFleetService(f.deps, NewBookingService(f.deps)).AddCar(f.ctx, admin, CarInput{
		PlateNumber:    plate,
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2022,
		InitialMileage: mileage,
	})
	require.NoError(t, err)
	return car
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errorutil.HasCode(err, code), "expected %s, got %v", code, err)
}
