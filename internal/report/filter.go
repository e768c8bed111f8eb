// Package report is the read-only projection behind the admin reports.
package report

import (
	"strings"
	"time"
)

// Entity names a reportable workflow.
type Entity string

const (
	EntityLeave   Entity = "leave"
	EntityBooking Entity = "booking"
	EntityTicket  Entity = "ticket"
)

// Dimension selects what SelectedID refers to.
type Dimension string

const (
	DimensionEmployee   Dimension = "employee"
	DimensionDepartment Dimension = "department"
	DimensionManager    Dimension = "manager"
	DimensionCar        Dimension = "car"
	DimensionUser       Dimension = "user"
	DimensionCategory   Dimension = "category"
	DimensionRequester  Dimension = "requester"
	DimensionStaff      Dimension = "staff"
)

const dateLayout = "2006-01-02"

// Dimensions lists the dimensions of each entity; the first is the default.
var Dimensions = map[Entity][]Dimension{
	EntityLeave:   {DimensionEmployee, DimensionDepartment, DimensionManager},
	EntityBooking: {DimensionCar, DimensionUser},
	EntityTicket:  {DimensionCategory, DimensionRequester, DimensionStaff},
}

// Filter is the report query. "all" or empty disables a field. Dates use
// YYYY-MM-DD; unparseable dates are ignored and DateTo is inclusive.
type Filter struct {
	Dimension  Dimension `json:"dimension"`
	SelectedID string    `json:"selected_id"`
	DateFrom   string    `json:"date_from"`
	DateTo     string    `json:"date_to"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
}

// Option is one selectable group value.
type Option struct {
	ID      string `json:"id" gorm:"column:id"`
	Label   string `json:"label" gorm:"column:label"`
	LabelAr string `json:"label_ar,omitempty" gorm:"column:label_ar"`
}

// Normalize fills the default dimension for entity and drops unknown ones.
func (f Filter) Normalize(entity Entity) Filter {
	dims := Dimensions[entity]
	valid := false
	for _, d := range dims {
		if d == f.Dimension {
			valid = true
			break
		}
	}
	if !valid && len(dims) > 0 {
		f.Dimension = dims[0]
	}
	return f
}

// Selected returns SelectedID unless it is empty or "all".
func (f Filter) Selected() (string, bool) {
	return active(f.SelectedID)
}

// StatusValue returns Status unless it is empty or "all".
func (f Filter) StatusValue() (string, bool) {
	return active(f.Status)
}

// PriorityValue returns Priority unless it is empty or "all".
func (f Filter) PriorityValue() (string, bool) {
	return active(f.Priority)
}

// From is the inclusive lower bound, or nil.
func (f Filter) From() *time.Time {
	return parseDate(f.DateFrom)
}

// To is DateTo plus one day, or nil. Rows at exactly To are included.
func (f Filter) To() *time.Time {
	t := parseDate(f.DateTo)
	if t == nil {
		return nil
	}
	next := t.AddDate(0, 0, 1)
	return &next
}

// Within reports whether t falls inside the date bounds.
func (f Filter) Within(t time.Time) bool {
	if from := f.From(); from != nil && t.Before(*from) {
		return false
	}
	if to := f.To(); to != nil && t.After(*to) {
		return false
	}
	return true
}

func active(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "all" {
		return "", false
	}
	return v, true
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}
