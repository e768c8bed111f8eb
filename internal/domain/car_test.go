package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarRegistrationStatus(t *testing.T) {
	today := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	expiry := func(days int) *time.Time {
		d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
		return &d
	}

	car := &Car{}
	assert.Nil(t, car.RegistrationDaysLeft(today))
	assert.Equal(t, RegistrationOK, car.RegistrationStatus(today))

	cases := []struct {
		days int
		want RegistrationStatus
	}{
		{-1, RegistrationExpired},
		{0, RegistrationExpiringSoon},
		{30, RegistrationExpiringSoon},
		{31, RegistrationOK},
	}
	for _, tc := range cases {
		car.RegistrationExpiry = expiry(tc.days)
		left := car.RegistrationDaysLeft(today)
		require.NotNil(t, left)
		assert.Equal(t, tc.days, *left)
		assert.Equal(t, tc.want, car.RegistrationStatus(today), "days=%d", tc.days)
	}
}

func TestCarDisplayName(t *testing.T) {
	car := &Car{Year: 2022, Make: "Toyota", Model: "Camry", PlateNumber: "ABC-123"}
	assert.Equal(t, "2022 Toyota Camry - ABC-123", car.DisplayName())
}

func TestParseMileage(t *testing.T) {
	v, err := ParseMileage("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.6", v.String())

	v, err = ParseMileage("99999999999.94")
	require.NoError(t, err)
	assert.True(t, v.Equal(MaxMileage))

	for _, raw := range []string{"", "lots", "-1", "99999999999.96", "1e12"} {
		_, err := ParseMileage(raw)
		assert.Error(t, err, raw)
	}
}
