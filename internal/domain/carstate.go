package domain

import (
	"sort"
	"time"
)

// CarAvailability is the derived occupancy of a car.
type CarAvailability string

const (
	CarFree     CarAvailability = "free"
	CarPending  CarAvailability = "pending"
	CarBorrowed CarAvailability = "borrowed"
)

// CarState is recomputed from booking history on every read.
type CarState struct {
	CarID          int64           `json:"car_id"`
	Status         CarAvailability `json:"status"`
	BookingNumber  string          `json:"booking_number,omitempty"`
	Borrower       string          `json:"borrower,omitempty"`
	LastBorrower   string          `json:"last_borrower,omitempty"`
	LastReturnedAt *time.Time      `json:"last_returned_at,omitempty"`
	LastReturnNote string          `json:"last_return_note,omitempty"`
}

// ComputeCarStates derives the state of every car that appears in bookings.
// Cars without bookings are absent from the result and should be read as free.
func ComputeCarStates(bookings []CarBooking) map[int64]CarState {
	active := make([]CarBooking, 0, len(bookings))
	returned := make([]CarBooking, 0, len(bookings))
	for _, b := range bookings {
		switch {
		case b.Status.Active():
			active = append(active, b)
		case b.Status == BookingStatusReturned:
			returned = append(returned, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].ID > active[j].ID
		}
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	sort.SliceStable(returned, func(i, j int) bool {
		return returnTime(returned[i]).After(returnTime(returned[j]))
	})

	states := make(map[int64]CarState)
	for _, b := range active {
		if _, seen := states[b.CarID]; seen {
			continue
		}
		states[b.CarID] = CarState{
			CarID:         b.CarID,
			Status:        CarAvailability(b.Status),
			BookingNumber: b.BookingNumber,
			Borrower:      b.EmployeeName,
		}
	}

	seen := make(map[int64]bool)
	for _, b := range returned {
		if seen[b.CarID] {
			continue
		}
		seen[b.CarID] = true
		st, ok := states[b.CarID]
		if !ok {
			st = CarState{CarID: b.CarID, Status: CarFree}
		}
		st.LastBorrower = b.EmployeeName
		st.LastReturnedAt = b.ActualReturn
		st.LastReturnNote = b.ReturnNote
		states[b.CarID] = st
	}
	return states
}

// StateFor returns the state for carID, defaulting to free.
func StateFor(states map[int64]CarState, carID int64) CarState {
	if st, ok := states[carID]; ok {
		return st
	}
	return CarState{CarID: carID, Status: CarFree}
}

func returnTime(b CarBooking) time.Time {
	if b.ActualReturn == nil {
		return time.Time{}
	}
	return *b.ActualReturn
}
