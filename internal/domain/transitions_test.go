package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminTransitionAllowed(t *testing.T) {
	assert.True(t, AdminTransitionAllowed(LeaveStatusArchived, LeaveStatusDraft))
	assert.True(t, AdminTransitionAllowed(BookingStatusReturned, BookingStatusPending))
	assert.True(t, AdminTransitionAllowed(TicketStatusClosed, TicketStatusOpen))
	assert.True(t, AdminTransitionAllowed(TicketStatusOpen, TicketStatusOpen))
	assert.False(t, AdminTransitionAllowed(LeaveStatusDraft, LeaveStatus("rejected")))
	assert.False(t, AdminTransitionAllowed(BookingStatus(""), BookingStatusPending))
}

func TestSystemTransitionAllowed(t *testing.T) {
	assert.True(t, SystemTransitionAllowed(LeaveStatusDraft, LeaveStatusPending))
	assert.False(t, SystemTransitionAllowed(LeaveStatusPending, LeaveStatusPending))
	assert.False(t, SystemTransitionAllowed(LeaveStatusApproved, LeaveStatusPending))

	assert.True(t, SystemTransitionAllowed(BookingStatusPending, BookingStatusBorrowed))
	assert.True(t, SystemTransitionAllowed(BookingStatusBorrowed, BookingStatusReturned))
	assert.False(t, SystemTransitionAllowed(BookingStatusPending, BookingStatusReturned))
	assert.False(t, SystemTransitionAllowed(BookingStatusReturned, BookingStatusBorrowed))

	assert.True(t, SystemTransitionAllowed(TicketStatusOpen, TicketStatusInProgress))
	assert.False(t, SystemTransitionAllowed(TicketStatusResolved, TicketStatusInProgress))
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, LeaveStatusDraft.Editable())
	assert.True(t, LeaveStatusPending.Editable())
	assert.False(t, LeaveStatusApproved.Editable())
	assert.False(t, LeaveStatusArchived.Editable())

	assert.True(t, BookingStatusPending.Active())
	assert.True(t, BookingStatusBorrowed.Active())
	assert.False(t, BookingStatusReturned.Active())
	assert.False(t, BookingStatusArchived.Active())

	assert.Equal(t, "badge-out", BookingStatusBorrowed.BadgeClass())
	assert.Equal(t, "badge-danger", TicketPriorityUrgent.BadgeClass())
}
