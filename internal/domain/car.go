package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RegistrationStatus summarises how close a car's registration is to expiry.
type RegistrationStatus string

const (
	RegistrationOK           RegistrationStatus = "ok"
	RegistrationExpiringSoon RegistrationStatus = "expiring_soon"
	RegistrationExpired      RegistrationStatus = "expired"
)

const registrationWarningDays = 30

// MaxMileage is the largest reading a NUMERIC(12,1) column holds.
var MaxMileage = decimal.RequireFromString("99999999999.9")

// ParseMileage reads a mileage or odometer value rounded to one decimal.
// It fails on garbage, negatives and values above MaxMileage.
func ParseMileage(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid mileage %q: %w", raw, err)
	}
	v = v.Round(1)
	if v.IsNegative() || v.GreaterThan(MaxMileage) {
		return decimal.Decimal{}, fmt.Errorf("mileage %s out of range", v)
	}
	return v, nil
}

// Car is a pool vehicle.
type Car struct {
	ID                   int64
	PlateNumber          string
	PlateNumberAr        string
	Make                 string
	Model                string
	Year                 int
	Color                LocalizedText
	Seats                int
	PlateImage           string
	IsActive             bool
	CurrentMileage       decimal.Decimal
	LastMajorMaintenance *time.Time
	LastMinorMaintenance *time.Time
	RegistrationExpiry   *time.Time
	CreatedAt            time.Time
}

// DisplayName renders "<year> <make> <model> - <plate>".
func (c *Car) DisplayName() string {
	return fmt.Sprintf("%d %s %s - %s", c.Year, c.Make, c.Model, c.PlateNumber)
}

// RegistrationDaysLeft returns whole days until expiry, or nil when unknown.
func (c *Car) RegistrationDaysLeft(today time.Time) *int {
	if c.RegistrationExpiry == nil {
		return nil
	}
	days := daysBetween(today, *c.RegistrationExpiry)
	return &days
}

// RegistrationStatus derives the registration state as of today.
func (c *Car) RegistrationStatus(today time.Time) RegistrationStatus {
	left := c.RegistrationDaysLeft(today)
	switch {
	case left == nil:
		return RegistrationOK
	case *left < 0:
		return RegistrationExpired
	case *left <= registrationWarningDays:
		return RegistrationExpiringSoon
	default:
		return RegistrationOK
	}
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
