package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	assert.Equal(t, DimensionEmployee, Filter{}.Normalize(EntityLeave).Dimension)
	assert.Equal(t, DimensionCar, Filter{Dimension: DimensionStaff}.Normalize(EntityBooking).Dimension)
	assert.Equal(t, DimensionRequester, Filter{Dimension: DimensionRequester}.Normalize(EntityTicket).Dimension)
}

func TestFilter_AllDisablesFields(t *testing.T) {
	f := Filter{SelectedID: "all", Status: " ", Priority: "high"}

	_, ok := f.Selected()
	assert.False(t, ok)
	_, ok = f.StatusValue()
	assert.False(t, ok)
	priority, ok := f.PriorityValue()
	assert.True(t, ok)
	assert.Equal(t, "high", priority)
}

func TestFilter_DateBounds(t *testing.T) {
	f := Filter{DateFrom: "2025-03-01", DateTo: "2025-03-31"}

	assert.True(t, f.Within(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.Within(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, f.Within(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, f.Within(time.Date(2025, 4, 1, 0, 0, 1, 0, time.UTC)))
	assert.False(t, f.Within(time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)))

	bad := Filter{DateFrom: "03/01/2025", DateTo: "soon"}
	assert.Nil(t, bad.From())
	assert.Nil(t, bad.To())
	assert.True(t, bad.Within(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}
