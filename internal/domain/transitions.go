package domain

// Status is implemented by every workflow status enum.
type Status interface {
	~string
	Valid() bool
}

// AdminTransitionAllowed is the relation used for admin-driven status fields:
// any valid status may be set from any valid status, including regressions.
func AdminTransitionAllowed[S Status](from, to S) bool {
	return from.Valid() && to.Valid()
}

// SystemTransitionAllowed is the stricter relation used when the engine
// advances a status on its own (printing, hand-over, first response).
func SystemTransitionAllowed[S Status](from, to S) bool {
	for _, next := range systemTransitions(from) {
		if next == to {
			return true
		}
	}
	return false
}

func systemTransitions[S Status](from S) []S {
	var out []S
	switch f := any(from).(type) {
	case LeaveStatus:
		for _, s := range leaveSystemTransitions[f] {
			out = append(out, S(s))
		}
	case BookingStatus:
		for _, s := range bookingSystemTransitions[f] {
			out = append(out, S(s))
		}
	case TicketStatus:
		for _, s := range ticketSystemTransitions[f] {
			out = append(out, S(s))
		}
	}
	return out
}

var leaveSystemTransitions = map[LeaveStatus][]LeaveStatus{
	LeaveStatusDraft: {LeaveStatusPending},
}

var bookingSystemTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusBorrowed},
	BookingStatusBorrowed: {BookingStatusReturned},
}

var ticketSystemTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen: {TicketStatusInProgress},
}
