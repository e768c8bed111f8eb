package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/repository"
)

func TestWithinTx_RollsBack(t *testing.T) {
	store := New().Store()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := store.Sequences.Next(ctx, domain.PrefixTicket, 2025)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.NoError(t, store.Categories.Create(ctx, &domain.HelpDeskCategory{Name: "Hardware", Department: "IT", IsActive: true}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	categories, err := store.Categories.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, categories)

	n, err := store.Sequences.Next(ctx, domain.PrefixTicket, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = store.Sequences.Next(ctx, domain.PrefixTicket, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBookings_OneActivePerCar(t *testing.T) {
	store := New().Store()
	ctx := context.Background()

	first := &domain.CarBooking{BookingNumber: "CB-2025-00001", CarID: 7, Status: domain.BookingStatusPending}
	require.NoError(t, store.Bookings.Create(ctx, first))
	err := store.Bookings.Create(ctx, &domain.CarBooking{BookingNumber: "CB-2025-00002", CarID: 7, Status: domain.BookingStatusBorrowed})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	first.Status = domain.BookingStatusReturned
	require.NoError(t, store.Bookings.Update(ctx, first))
	require.NoError(t, store.Bookings.Create(ctx, &domain.CarBooking{BookingNumber: "CB-2025-00002", CarID: 7, Status: domain.BookingStatusPending}))
}

func TestNotifications_FailInserts(t *testing.T) {
	db := New()
	store := db.Store()
	ctx := context.Background()
	boom := errors.New("disk full")

	db.FailNotificationInserts(boom)
	err := store.Notifications.Create(ctx, &domain.Notification{RecipientUsername: "alice"})
	assert.ErrorIs(t, err, boom)

	db.FailNotificationInserts(nil)
	require.NoError(t, store.Notifications.Create(ctx, &domain.Notification{RecipientUsername: "alice"}))
	count, err := store.Notifications.CountUnread(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWithinTx_RollbackKeepsOutsideWrites(t *testing.T) {
	store := New().Store()
	ctx := context.Background()
	n := &domain.Notification{RecipientUsername: "alice"}
	require.NoError(t, store.Notifications.Create(ctx, n))

	boom := errors.New("odometer too low")
	markErr := make(chan error, 1)
	err := store.Tx.WithinTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, store.Categories.Create(txCtx, &domain.HelpDeskCategory{Name: "Hardware", Department: "IT", IsActive: true}))
		started := make(chan struct{})
		go func() {
			close(started)
			markErr <- store.Notifications.MarkRead(ctx, n.ID)
		}()
		<-started
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, <-markErr)

	stored, err := store.Notifications.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)

	categories, err := store.Categories.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestWithinTx_OutsideReadsSeeCommittedOnly(t *testing.T) {
	store := New().Store()
	ctx := context.Background()

	countOutside := func() int64 {
		count, err := store.Notifications.CountUnread(ctx, "alice")
		require.NoError(t, err)
		return count
	}

	boom := errors.New("boom")
	err := store.Tx.WithinTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, store.Notifications.Create(txCtx, &domain.Notification{RecipientUsername: "alice"}))
		inside, err := store.Notifications.CountUnread(txCtx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), inside)
		assert.Equal(t, int64(0), countOutside())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countOutside())

	err = store.Tx.WithinTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, store.Notifications.Create(txCtx, &domain.Notification{RecipientUsername: "alice"}))
		assert.Equal(t, int64(0), countOutside())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countOutside())
}

func TestWrite_FailedOutsideWriteLeavesNoTrace(t *testing.T) {
	store := New().Store()
	ctx := context.Background()

	require.NoError(t, store.Bookings.Create(ctx, &domain.CarBooking{BookingNumber: "CB-2025-00001", CarID: 7, Status: domain.BookingStatusPending}))
	err := store.Bookings.Create(ctx, &domain.CarBooking{BookingNumber: "CB-2025-00002", CarID: 7, Status: domain.BookingStatusPending})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	bookings, err := store.Bookings.List(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
