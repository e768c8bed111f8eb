package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

func validBooking() BookingInput {
	return BookingInput{
		DestinationEN:    "Airport",
		PurposeEN:        "Client pickup",
		ManagerName:      "Mona Manager",
		PlannedDeparture: "2025-03-10T10:00",
	}
}

func TestBookingService_OneActiveBookingPerCar(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(f.deps)
	car := f.seedCar(t, "abc-123", "12000")

	first, err := svc.Create(f.ctx, alice, car.ID, validBooking())
	require.NoError(t, err)
	assert.Equal(t, "CB-2025-00001", first.BookingNumber)
	assert.Equal(t, domain.BookingStatusPending, first.Status)

	_, err = svc.Create(f.ctx, bob, car.ID, validBooking())
	assertCode(t, err, errorutil.CodeInvariant)

	_, err = svc.MarkBorrowed(f.ctx, admin, first.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, bob, car.ID, validBooking())
	assertCode(t, err, errorutil.CodeInvariant)

	state, err := svc.CarState(f.ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CarBorrowed, state.Status)
	assert.Equal(t, "Alice Adams", state.Borrower)

	_, err = svc.Archive(f.ctx, admin, first.ID)
	require.NoError(t, err)
	second, err := svc.Create(f.ctx, bob, car.ID, validBooking())
	require.NoError(t, err)
	assert.Equal(t, "CB-2025-00002", second.BookingNumber)

	// bringing the archived booking back would double-book the car
	_, err = svc.ResetToPending(f.ctx, admin, first.ID)
	assertCode(t, err, errorutil.CodeInvariant)
}

func TestBookingService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(f.deps)
	car := f.seedCar(t, "XYZ-1", "")

	in := validBooking()
	in.PlannedDeparture = "tomorrow"
	_, err := svc.Create(f.ctx, alice, car.ID, in)
	assertCode(t, err, errorutil.CodeValidation)

	_, err = svc.Create(f.ctx, alice, 0, validBooking())
	assertCode(t, err, errorutil.CodeValidation)

	_, err = svc.Create(f.ctx, alice, 4242, validBooking())
	assertCode(t, err, errorutil.CodeNotFound)

	_, err = NewFleetService(f.deps, svc).ToggleCar(f.ctx, admin, car.ID)
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, alice, car.ID, validBooking())
	assertCode(t, err, errorutil.CodeValidation)
}

func TestBookingService_ReturnAdvancesMileage(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(f.deps)
	car := f.seedCar(t, "ODO-1", "12000")

	b, err := svc.Create(f.ctx, alice, car.ID, validBooking())
	require.NoError(t, err)
	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "15000"})
	assertCode(t, err, errorutil.CodeInvariant)

	borrowed, err := svc.MarkBorrowed(f.ctx, admin, b.ID, "2025-03-10T10:15")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusBorrowed, borrowed.Status)
	require.NotNil(t, borrowed.ActualDeparture)

	returned, err := svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{
		Odometer:     "15000",
		ActualReturn: "2025-03-10T18:00",
		Note:         "  all good ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusReturned, returned.Status)
	require.NotNil(t, returned.OdometerReturn)
	assert.True(t, returned.OdometerReturn.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, "all good", returned.ReturnNote)

	stored, err := f.store.Cars.GetByID(f.ctx, car.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentMileage.Equal(decimal.NewFromInt(15000)))

	inbox := f.inbox(t, "alice")
	require.Len(t, inbox, 2)
	assert.Equal(t, "Booking CB-2025-00001 returned successfully.", inbox[0].Title.EN)
	assert.Equal(t, "Booking CB-2025-00001 marked as borrowed. Key handed over.", inbox[1].Title.EN)
}

func TestBookingService_ReturnRejectsLowerOdometer(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(f.deps)
	car := f.seedCar(t, "ODO-2", "15000")

	b, err := svc.Create(f.ctx, bob, car.ID, validBooking())
	require.NoError(t, err)
	_, err = svc.MarkBorrowed(f.ctx, admin, b.ID, "2025-03-10T10:00")
	require.NoError(t, err)

	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "14000", ActualReturn: "2025-03-10T12:00"})
	assertCode(t, err, errorutil.CodeInvariant)

	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "16000", ActualReturn: "2025-03-10T09:00"})
	assertCode(t, err, errorutil.CodeInvariant)

	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "lots"})
	assertCode(t, err, errorutil.CodeValidation)

	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: ""})
	assertCode(t, err, errorutil.CodeValidation)

	stored, err := svc.Get(f.ctx, bob, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusBorrowed, stored.Status)
	assert.Nil(t, stored.OdometerReturn)

	current, err := f.store.Cars.GetByID(f.ctx, car.ID)
	require.NoError(t, err)
	assert.True(t, current.CurrentMileage.Equal(decimal.NewFromInt(15000)))

	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "15000", ActualReturn: "2025-03-10T12:00"})
	require.NoError(t, err)
}

func TestBookingService_AdminOnlyTransitions(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(f.deps)
	car := f.seedCar(t, "ADM-1", "")
	b, err := svc.Create(f.ctx, alice, car.ID, validBooking())
	require.NoError(t, err)

	_, err = svc.MarkBorrowed(f.ctx, alice, b.ID, "")
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.Archive(f.ctx, alice, b.ID)
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.ListAll(f.ctx, alice, "all")
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.Get(f.ctx, bob, b.ID)
	assertCode(t, err, errorutil.CodeForbidden)

	archived, err := svc.Archive(f.ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusArchived, archived.Status)
	pending, err := svc.ResetToPending(f.ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, pending.Status)

	list, err := svc.ListAll(f.ctx, admin, "pending")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	mine, err := svc.ListMine(f.ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestBookingService_ReturnRoundsOdometer(t *testing.T) {
	f := newFixture(t)
	svc := NewBookingService(f.deps)
	car := f.seedCar(t, "ODO-3", "15000")

	b, err := svc.Create(f.ctx, alice, car.ID, validBooking())
	require.NoError(t, err)
	_, err = svc.MarkBorrowed(f.ctx, admin, b.ID, "2025-03-10T10:00")
	require.NoError(t, err)

	_, err = svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "100000000000", ActualReturn: "2025-03-10T12:00"})
	assertCode(t, err, errorutil.CodeValidation)

	returned, err := svc.MarkReturned(f.ctx, admin, b.ID, ReturnInput{Odometer: "14999.96", ActualReturn: "2025-03-10T12:00"})
	require.NoError(t, err)
	require.NotNil(t, returned.OdometerReturn)
	assert.Equal(t, "15000", returned.OdometerReturn.String())

	stored, err := f.store.Cars.GetByID(f.ctx, car.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentMileage.Equal(decimal.NewFromInt(15000)))
}
