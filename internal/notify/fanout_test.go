package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
)

func ticketEvent(t events.EventType, payload any) events.Event {
	return events.Event{
		Type:         t,
		Entity:       events.EntityTicket,
		RecordID:     12,
		RecordNumber: "HD-2025-00003",
		Timestamp:    time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		Payload:      payload,
	}
}

func TestPlan_TicketCreatedFansOutToDepartmentStaff(t *testing.T) {
	planned := Plan(ticketEvent(events.EventTicketCreated, events.TicketCreatedPayload{
		Title:           "Printer jam",
		Department:      "IT",
		DepartmentStaff: []string{"sam", "lee", "sam", ""},
	}))
	require.Len(t, planned, 2)
	assert.Equal(t, []string{"sam", "lee"}, Recipients(planned))
	for _, n := range planned {
		assert.Equal(t, "New Ticket: HD-2025-00003", n.Title.EN)
		assert.Equal(t, "Printer jam", n.Body.EN)
		assert.Equal(t, "Printer jam", n.Body.AR)
		assert.Equal(t, "/helpdesk/ticket/12", n.Link)
		assert.False(t, n.IsRead)
	}
}

func TestPlan_TicketReply(t *testing.T) {
	long := strings.Repeat("x", 300)

	staffReply := Plan(ticketEvent(events.EventTicketReplied, events.TicketRepliedPayload{
		Owner: "alice", FromStaff: true, Body: long,
	}))
	require.Len(t, staffReply, 1)
	assert.Equal(t, "alice", staffReply[0].RecipientUsername)
	assert.Len(t, staffReply[0].Body.EN, PreviewLength)

	toAssignee := Plan(ticketEvent(events.EventTicketReplied, events.TicketRepliedPayload{
		Owner: "alice", AssignedTo: "sam", DepartmentStaff: []string{"sam", "lee"}, Body: "any news?",
	}))
	assert.Equal(t, []string{"sam"}, Recipients(toAssignee))

	toDepartment := Plan(ticketEvent(events.EventTicketReplied, events.TicketRepliedPayload{
		Owner: "alice", DepartmentStaff: []string{"sam", "lee"}, Body: "any news?",
	}))
	assert.Equal(t, []string{"sam", "lee"}, Recipients(toDepartment))
}

func TestPlan_TicketStatusChanged(t *testing.T) {
	planned := Plan(ticketEvent(events.EventTicketStatusChanged, events.TicketStatusChangedPayload{
		Owner: "alice", OldStatus: domain.TicketStatusOpen, NewStatus: domain.TicketStatusInProgress,
	}))
	require.Len(t, planned, 1)
	assert.Equal(t, "Ticket HD-2025-00003 status updated to In Progress", planned[0].Title.EN)
	assert.Equal(t, "Status changed to: in progress", planned[0].Body.EN)
}

func TestPlan_SilentEvents(t *testing.T) {
	assert.Empty(t, Plan(ticketEvent(events.EventTicketPriorityChanged, events.TicketPriorityChangedPayload{
		OldPriority: domain.TicketPriorityNormal, NewPriority: domain.TicketPriorityUrgent,
	})))
	assert.Empty(t, Plan(ticketEvent(events.EventTicketAssigned, events.TicketAssignedPayload{
		Owner: "alice", NewAssignee: "sam",
	})))
	assert.Empty(t, Plan(events.Event{
		Type:    events.EventLeaveStatusChanged,
		Entity:  events.EntityLeave,
		Payload: events.LeaveStatusChangedPayload{Owner: "alice", OldStatus: domain.LeaveStatusPending, NewStatus: domain.LeaveStatusPending},
	}))
}

func TestPlan_LeaveAndBookingStatus(t *testing.T) {
	leave := Plan(events.Event{
		Type: events.EventLeaveStatusChanged, Entity: events.EntityLeave, RecordID: 4, RecordNumber: "LR-2025-00004",
		Payload: events.LeaveStatusChangedPayload{Owner: "alice", OldStatus: domain.LeaveStatusPending, NewStatus: domain.LeaveStatusApproved},
	})
	require.Len(t, leave, 1)
	assert.Equal(t, "Request LR-2025-00004 marked as approved", leave[0].Title.EN)
	assert.Equal(t, "/leave/4", leave[0].Link)

	booking := Plan(events.Event{
		Type: events.EventBookingStatusChanged, Entity: events.EntityBooking, RecordID: 9, RecordNumber: "CB-2025-00009",
		Payload: events.BookingStatusChangedPayload{Owner: "bob", OldStatus: domain.BookingStatusPending, NewStatus: domain.BookingStatusBorrowed},
	})
	require.Len(t, booking, 1)
	assert.Equal(t, "bob", booking[0].RecipientUsername)
	assert.Equal(t, "Booking CB-2025-00009 marked as borrowed. Key handed over.", booking[0].Title.EN)
	assert.Equal(t, "/cars/booking/9", booking[0].Link)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "hi", Preview("  hi  "))
	arabic := strings.Repeat("م", PreviewLength+5)
	assert.Equal(t, PreviewLength, len([]rune(Preview(arabic))))
}
