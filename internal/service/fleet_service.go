package service

import (
	"context"
	"strings"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// FleetService administers the car catalogue. Mileage is set once when a car
// is added; afterwards only returns advance it.
type FleetService struct {
	engine
	bookings *BookingService
}

// CarInput is the admin car form. Dates use YYYY-MM-DD; bad dates clear the
// field.
type CarInput struct {
	PlateNumber          string
	PlateNumberAr        string
	Make                 string
	Model                string
	Year                 int
	ColorEN              string
	ColorAR              string
	Seats                int
	PlateImage           string
	InitialMileage       string
	LastMajorMaintenance string
	LastMinorMaintenance string
	RegistrationExpiry   string
	IsActive             *bool
}

// FleetEntry pairs a car with its derived state.
type FleetEntry struct {
	Car                  domain.Car
	State                domain.CarState
	RegistrationStatus   domain.RegistrationStatus
	RegistrationDaysLeft *int
}

// NewFleetService constructs the service.
func NewFleetService(deps Dependencies, bookings *BookingService) *FleetService {
	return &FleetService{engine: newEngine(deps), bookings: bookings}
}

// AddCar registers a car. Plate numbers are stored upper-cased and unique.
func (s *FleetService) AddCar(ctx context.Context, actor *domain.UserProfile, input CarInput) (*domain.Car, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	car := &domain.Car{IsActive: true, CreatedAt: s.now()}
	if err := applyCarInput(car, input); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(input.InitialMileage); raw != "" {
		mileage, err := domain.ParseMileage(raw)
		if err != nil {
			return nil, validationError("current_mileage", "invalid mileage", raw)
		}
		car.CurrentMileage = mileage
	}
	if err := s.store.Cars.Create(ctx, car); err != nil {
		return nil, carStoreError(err, car.PlateNumber)
	}
	return car, nil
}

// EditCar updates catalogue fields. Mileage is left untouched.
func (s *FleetService) EditCar(ctx context.Context, actor *domain.UserProfile, id int64, input CarInput) (*domain.Car, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var car *domain.Car
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		car, err = s.store.Cars.GetForUpdate(ctx, id)
		if err != nil {
			return notFound("car", id, err)
		}
		if err := applyCarInput(car, input); err != nil {
			return err
		}
		return s.store.Cars.Update(ctx, car)
	})
	if err != nil {
		return nil, carStoreError(err, strings.ToUpper(strings.TrimSpace(input.PlateNumber)))
	}
	return car, nil
}

// ToggleCar flips whether a car can be booked.
func (s *FleetService) ToggleCar(ctx context.Context, actor *domain.UserProfile, id int64) (*domain.Car, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var car *domain.Car
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		car, err = s.store.Cars.GetForUpdate(ctx, id)
		if err != nil {
			return notFound("car", id, err)
		}
		car.IsActive = !car.IsActive
		return s.store.Cars.Update(ctx, car)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return car, nil
}

// ListCars returns cars with their derived state. Non-admins only see
// active cars.
func (s *FleetService) ListCars(ctx context.Context, actor *domain.UserProfile) ([]FleetEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	cars, err := s.store.Cars.List(ctx, !actor.IsAdmin)
	if err != nil {
		return nil, storeError(err)
	}
	states, err := s.bookings.FleetStates(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	out := make([]FleetEntry, 0, len(cars))
	for _, car := range cars {
		out = append(out, FleetEntry{
			Car:                  car,
			State:                domain.StateFor(states, car.ID),
			RegistrationStatus:   car.RegistrationStatus(today),
			RegistrationDaysLeft: car.RegistrationDaysLeft(today),
		})
	}
	return out, nil
}

// GetCar returns one car.
func (s *FleetService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := s.store.Cars.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(notFound("car", id, err))
	}
	return car, nil
}

func applyCarInput(car *domain.Car, input CarInput) error {
	plate := strings.ToUpper(strings.TrimSpace(input.PlateNumber))
	if plate == "" {
		return validationError("plate_number", "plate number is required", input.PlateNumber)
	}
	if strings.TrimSpace(input.Make) == "" || strings.TrimSpace(input.Model) == "" {
		return validationError("make", "make and model are required", nil)
	}
	if input.Year < 1900 || input.Year > 2100 {
		return validationError("year", "invalid year", input.Year)
	}
	seats := input.Seats
	if seats == 0 {
		seats = 5
	}
	if seats < 1 {
		return validationError("seats", "invalid seat count", input.Seats)
	}
	car.PlateNumber = plate
	car.PlateNumberAr = strings.TrimSpace(input.PlateNumberAr)
	car.Make = strings.TrimSpace(input.Make)
	car.Model = strings.TrimSpace(input.Model)
	car.Year = input.Year
	car.Color = domain.LocalizedText{EN: strings.TrimSpace(input.ColorEN), AR: strings.TrimSpace(input.ColorAR)}
	car.Seats = seats
	if img := strings.TrimSpace(input.PlateImage); img != "" {
		car.PlateImage = img
	}
	car.LastMajorMaintenance = domain.ParseOptionalDate(input.LastMajorMaintenance)
	car.LastMinorMaintenance = domain.ParseOptionalDate(input.LastMinorMaintenance)
	car.RegistrationExpiry = domain.ParseOptionalDate(input.RegistrationExpiry)
	if input.IsActive != nil {
		car.IsActive = *input.IsActive
	}
	return nil
}

func carStoreError(err error, plate string) error {
	if errorutil.HasCode(storeError(err), errorutil.CodeConflict) {
		return errorutil.NewConflict("plate number already registered", map[string]any{"plate_number": plate})
	}
	return storeError(err)
}
