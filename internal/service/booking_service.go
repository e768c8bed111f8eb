package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// BookingService drives the car booking lifecycle. Every operation that can
// change whether a car is held locks the car row first.
type BookingService struct {
	engine
	cars     repository.CarRepository
	bookings repository.BookingRepository
}

// BookingInput is the submitted booking form.
type BookingInput struct {
	Language             string
	DestinationEN        string
	DestinationAR        string
	PurposeEN            string
	PurposeAR            string
	ManagerName          string
	ManagerNameAr        string
	EmployeeNameAr       string
	EmployeeDepartmentAr string
	PlannedDeparture     string
}

// ReturnInput is the admin's return confirmation.
type ReturnInput struct {
	Odometer     string
	ActualReturn string
	Note         string
}

var activeBookingStatuses = []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusBorrowed}

// NewBookingService constructs the service.
func NewBookingService(deps Dependencies) *BookingService {
	return &BookingService{
		engine:   newEngine(deps),
		cars:     deps.Store.Cars,
		bookings: deps.Store.Bookings,
	}
}

// Create books a car for the actor. It fails when the car already has an
// active booking.
func (s *BookingService) Create(ctx context.Context, actor *domain.UserProfile, carID int64, input BookingInput) (*domain.CarBooking, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	lang, err := domain.ParseLanguage(input.Language)
	if err != nil {
		return nil, validationError("language", err.Error(), input.Language)
	}
	planned, err := domain.ParseFormDateTime(input.PlannedDeparture)
	if err != nil {
		return nil, validationError("planned_departure", "invalid date format", input.PlannedDeparture)
	}
	if carID <= 0 {
		return nil, validationError("car_id", "please select a vehicle", carID)
	}

	booking := &domain.CarBooking{
		CarID:                carID,
		EmployeeUsername:     actor.Username,
		EmployeeName:         actor.FullName,
		EmployeeNameAr:       firstNonEmpty(input.EmployeeNameAr, actor.FullNameAr),
		EmployeeDepartment:   actor.Department,
		EmployeeDepartmentAr: strings.TrimSpace(input.EmployeeDepartmentAr),
		EmployeeNumber:       actor.EmployeeNumber,
		Destination:          domain.LocalizedText{EN: strings.TrimSpace(input.DestinationEN), AR: strings.TrimSpace(input.DestinationAR)},
		Purpose:              domain.LocalizedText{EN: strings.TrimSpace(input.PurposeEN), AR: strings.TrimSpace(input.PurposeAR)},
		ManagerName:          strings.TrimSpace(input.ManagerName),
		ManagerNameAr:        strings.TrimSpace(input.ManagerNameAr),
		PlannedDeparture:     planned,
		Language:             lang,
		Status:               domain.BookingStatusPending,
		CreatedAt:            s.now(),
	}

	err = s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		car, err := s.cars.GetForUpdate(ctx, carID)
		if err != nil {
			return nil, notFound("car", carID, err)
		}
		if !car.IsActive {
			return nil, validationError("car_id", "vehicle is not available for booking", carID)
		}
		if err := s.ensureCarFree(ctx, carID, 0); err != nil {
			return nil, err
		}
		number, err := s.nextNumber(ctx, domain.PrefixBooking)
		if err != nil {
			return nil, err
		}
		booking.BookingNumber = number
		if err := s.bookings.Create(ctx, booking); err != nil {
			return nil, err
		}
		return bookingEvent(events.EventBookingCreated, booking, actor, nil), nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// MarkBorrowed records the key hand-over. An empty or unparseable departure
// time means now.
func (s *BookingService) MarkBorrowed(ctx context.Context, actor *domain.UserProfile, id int64, actualDeparture string) (*domain.CarBooking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	departure := s.now()
	if t, err := domain.ParseFormDateTime(actualDeparture); err == nil {
		departure = t
	}
	return s.transition(ctx, actor, id, func(ctx context.Context, booking *domain.CarBooking, _ *domain.Car) error {
		if !domain.SystemTransitionAllowed(booking.Status, domain.BookingStatusBorrowed) {
			return errorutil.NewInvariantViolation("only pending bookings can be handed over", bookingDetails(booking, nil))
		}
		booking.ActualDeparture = &departure
		booking.Status = domain.BookingStatusBorrowed
		return nil
	})
}

// MarkReturned closes a borrowed booking and advances the car's mileage.
// Any failure leaves both rows untouched.
func (s *BookingService) MarkReturned(ctx context.Context, actor *domain.UserProfile, id int64, input ReturnInput) (*domain.CarBooking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, id, func(ctx context.Context, booking *domain.CarBooking, car *domain.Car) error {
		if !domain.SystemTransitionAllowed(booking.Status, domain.BookingStatusReturned) {
			return errorutil.NewInvariantViolation("only borrowed bookings can be returned", bookingDetails(booking, car))
		}
		raw := strings.TrimSpace(input.Odometer)
		if raw == "" {
			return errorutil.NewValidationError("please enter the odometer reading", withField(bookingDetails(booking, car), "odometer_return", raw))
		}
		odometer, err := domain.ParseMileage(raw)
		if err != nil {
			return errorutil.NewValidationError("invalid odometer value", withField(bookingDetails(booking, car), "odometer_return", raw))
		}
		returnedAt := s.now()
		if v := strings.TrimSpace(input.ActualReturn); v != "" {
			t, err := domain.ParseFormDateTime(v)
			if err != nil {
				return errorutil.NewValidationError("invalid date value", withField(bookingDetails(booking, car), "actual_return", v))
			}
			returnedAt = t
		}
		if booking.ActualDeparture != nil && returnedAt.Before(*booking.ActualDeparture) {
			return errorutil.NewInvariantViolation("return time cannot be earlier than borrow time",
				withField(bookingDetails(booking, car), "actual_return", returnedAt.Format(domain.FormDateTimeLayout)))
		}
		if odometer.LessThan(car.CurrentMileage) {
			return errorutil.NewInvariantViolation("odometer reading cannot be less than last recorded reading",
				withField(bookingDetails(booking, car), "odometer_return", odometer.String()))
		}
		booking.OdometerReturn = &odometer
		booking.ActualReturn = &returnedAt
		booking.ReturnNote = strings.TrimSpace(input.Note)
		booking.Status = domain.BookingStatusReturned
		car.CurrentMileage = odometer
		if err := s.cars.Update(ctx, car); err != nil {
			return err
		}
		return nil
	})
}

// Archive retires a booking.
func (s *BookingService) Archive(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.CarBooking, error) {
	return s.setStatus(ctx, actor, id, domain.BookingStatusArchived)
}

// ResetToPending puts a booking back in the queue. It is refused when that
// would give the car a second active booking.
func (s *BookingService) ResetToPending(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.CarBooking, error) {
	return s.setStatus(ctx, actor, id, domain.BookingStatusPending)
}

func (s *BookingService) setStatus(ctx context.Context, actor *domain.UserProfile, id int64, status domain.BookingStatus) (*domain.CarBooking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, id, func(ctx context.Context, booking *domain.CarBooking, _ *domain.Car) error {
		if !domain.AdminTransitionAllowed(booking.Status, status) {
			return errorutil.NewInvariantViolation("status transition refused", bookingDetails(booking, nil))
		}
		if status.Active() && !booking.Status.Active() {
			if err := s.ensureCarFree(ctx, booking.CarID, booking.ID); err != nil {
				return err
			}
		}
		booking.Status = status
		return nil
	})
}

// transition loads the booking and its locked car, applies mutate, persists
// and notifies the owner when the status changed.
func (s *BookingService) transition(ctx context.Context, actor *domain.UserProfile, id int64, mutate func(context.Context, *domain.CarBooking, *domain.Car) error) (*domain.CarBooking, error) {
	var booking *domain.CarBooking
	err := s.run(ctx, func(ctx context.Context) (*events.Event, error) {
		current, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			return nil, notFound("booking", id, err)
		}
		car, err := s.cars.GetForUpdate(ctx, current.CarID)
		if err != nil {
			return nil, notFound("car", current.CarID, err)
		}
		// re-read under the car lock
		booking, err = s.bookings.GetByID(ctx, id)
		if err != nil {
			return nil, notFound("booking", id, err)
		}
		old := booking.Status
		if err := mutate(ctx, booking, car); err != nil {
			return nil, err
		}
		booking.UpdatedAt = s.now()
		if err := s.bookings.Update(ctx, booking); err != nil {
			return nil, err
		}
		return bookingEvent(events.EventBookingStatusChanged, booking, actor, events.BookingStatusChangedPayload{
			Owner:     booking.EmployeeUsername,
			OldStatus: old,
			NewStatus: booking.Status,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking status changed",
		zap.String("record_number", booking.BookingNumber),
		zap.String("status", string(booking.Status)))
	return booking, nil
}

// ensureCarFree fails when carID has an active booking other than exceptID.
func (s *BookingService) ensureCarFree(ctx context.Context, carID, exceptID int64) error {
	active, err := s.bookings.List(ctx, repository.BookingFilter{CarID: carID, Statuses: activeBookingStatuses})
	if err != nil {
		return err
	}
	for _, b := range active {
		if b.ID == exceptID {
			continue
		}
		return errorutil.NewInvariantViolation("vehicle is currently out, please choose another", map[string]any{
			"car_id":         carID,
			"booking_number": b.BookingNumber,
			"status":         b.Status,
		})
	}
	return nil
}

// Get returns a booking visible to its owner or an admin.
func (s *BookingService) Get(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.CarBooking, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(notFound("booking", id, err))
	}
	if !actor.Owns(booking.EmployeeUsername) && !actor.IsAdmin {
		return nil, errorutil.NewForbidden("access denied")
	}
	return booking, nil
}

// ListMine returns the actor's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, actor *domain.UserProfile) ([]domain.CarBooking, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	list, err := s.bookings.List(ctx, repository.BookingFilter{EmployeeUsername: actor.Username})
	return list, storeError(err)
}

// ListAll is the admin listing. "all" or "" disables the status filter.
func (s *BookingService) ListAll(ctx context.Context, actor *domain.UserProfile, status string) ([]domain.CarBooking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	filter := repository.BookingFilter{}
	if st := domain.BookingStatus(status); st.Valid() {
		filter.Statuses = []domain.BookingStatus{st}
	}
	list, err := s.bookings.List(ctx, filter)
	return list, storeError(err)
}

// CarState derives the current state of one car from its bookings.
func (s *BookingService) CarState(ctx context.Context, carID int64) (domain.CarState, error) {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{CarID: carID})
	if err != nil {
		return domain.CarState{}, storeError(err)
	}
	return domain.StateFor(domain.ComputeCarStates(bookings), carID), nil
}

// FleetStates derives the state of every car that has bookings.
func (s *BookingService) FleetStates(ctx context.Context) (map[int64]domain.CarState, error) {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{
		Statuses: []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusBorrowed, domain.BookingStatusReturned},
	})
	if err != nil {
		return nil, storeError(err)
	}
	return domain.ComputeCarStates(bookings), nil
}

func bookingEvent(t events.EventType, b *domain.CarBooking, actor *domain.UserProfile, payload any) *events.Event {
	return &events.Event{
		Type:         t,
		Entity:       events.EntityBooking,
		RecordID:     b.ID,
		RecordNumber: b.BookingNumber,
		Actor:        events.ActorFromProfile(actor, false),
		Payload:      payload,
	}
}

// bookingDetails snapshots the booking for error responses.
func bookingDetails(b *domain.CarBooking, car *domain.Car) map[string]any {
	details := map[string]any{
		"booking_number":   b.BookingNumber,
		"status":           b.Status,
		"actual_departure": formatOptional(b.ActualDeparture),
	}
	if car != nil {
		details["current_mileage"] = car.CurrentMileage.String()
	}
	return details
}

func withField(details map[string]any, field string, input any) map[string]any {
	details["field"] = field
	details["input"] = input
	return details
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.FormDateTimeLayout)
}
