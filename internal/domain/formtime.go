package domain

import (
	"strings"
	"time"
)

const (
	// FormDateTimeLayout is the datetime-local format submitted by forms.
	FormDateTimeLayout = "2006-01-02T15:04"
	// FormDateLayout is the date format used by filters and car dates.
	FormDateLayout = "2006-01-02"
)

// ParseFormDateTime parses a datetime-local value.
func ParseFormDateTime(raw string) (time.Time, error) {
	return time.Parse(FormDateTimeLayout, strings.TrimSpace(raw))
}

// ParseOptionalDate returns nil for empty or malformed dates.
func ParseOptionalDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(FormDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}
