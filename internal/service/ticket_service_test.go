package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

func TestTicketService_CreateNotifiesDepartmentStaff(t *testing.T) {
	f := newFixture(t)
	it, _ := f.seedHelpdesk(t)
	svc := NewTicketService(f.deps)

	ticket, err := svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "Laptop will not boot"})
	require.NoError(t, err)
	assert.Equal(t, "HD-2025-00001", ticket.TicketNumber)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityNormal, ticket.Priority)

	for _, u := range []string{"sam", "lee"} {
		inbox := f.inbox(t, u)
		require.Len(t, inbox, 1, u)
		assert.Equal(t, "New Ticket: HD-2025-00001", inbox[0].Title.EN)
		assert.Equal(t, "Laptop will not boot", inbox[0].Body.EN)
	}
	assert.Empty(t, f.inbox(t, "hana"))
	assert.Empty(t, f.inbox(t, "alice"))

	evts := f.events()
	last := evts[len(evts)-1]
	assert.Equal(t, events.EventTicketCreated, last.Type)
	assert.ElementsMatch(t, []string{"sam", "lee"}, last.Recipients)
}

func TestTicketService_CreateSkipsInactiveStaff(t *testing.T) {
	f := newFixture(t)
	it, _ := f.seedHelpdesk(t)
	admins := NewHelpdeskAdminService(f.deps)
	staff, err := admins.ListStaff(f.ctx, admin, "IT")
	require.NoError(t, err)
	for _, m := range staff {
		if m.Username == "lee" {
			_, err := admins.ToggleStaff(f.ctx, admin, m.ID)
			require.NoError(t, err)
		}
	}

	_, err = NewTicketService(f.deps).Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "VPN"})
	require.NoError(t, err)
	assert.Len(t, f.inbox(t, "sam"), 1)
	assert.Empty(t, f.inbox(t, "lee"))
}

func TestTicketService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	it, _ := f.seedHelpdesk(t)
	svc := NewTicketService(f.deps)

	_, err := svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID})
	assertCode(t, err, errorutil.CodeValidation)
	_, err = svc.Create(f.ctx, alice, TicketInput{CategoryID: 999, Title: "x"})
	assertCode(t, err, errorutil.CodeNotFound)
	_, err = svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "x", Priority: "critical"})
	assertCode(t, err, errorutil.CodeValidation)

	_, err = NewHelpdeskAdminService(f.deps).ToggleCategory(f.ctx, admin, it.ID)
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "x"})
	assertCode(t, err, errorutil.CodeValidation)

	mine, err := svc.ListMine(f.ctx, alice, "")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestTicketService_StaffReplyMovesToInProgress(t *testing.T) {
	f := newFixture(t)
	it, _ := f.seedHelpdesk(t)
	svc := NewTicketService(f.deps)
	ticket, err := svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "Printer"})
	require.NoError(t, err)

	_, err = svc.Reply(f.ctx, hana, ticket.ID, "not my department", true)
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.Reply(f.ctx, bob, ticket.ID, "me too", false)
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.Reply(f.ctx, sam, ticket.ID, "   ", true)
	assertCode(t, err, errorutil.CodeValidation)

	msg, err := svc.Reply(f.ctx, sam, ticket.ID, "Looking into it", true)
	require.NoError(t, err)
	assert.True(t, msg.IsStaffReply)

	detail, err := svc.Get(f.ctx, alice, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, detail.Ticket.Status)
	require.Len(t, detail.Messages, 1)
	assert.True(t, detail.IsOwner)
	assert.False(t, detail.IsStaff)

	inbox := f.inbox(t, "alice")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Staff replied to HD-2025-00001", inbox[0].Title.EN)
	assert.Equal(t, "Looking into it", inbox[0].Body.EN)

	// a later staff reply leaves the status alone
	_, err = svc.ChangeStatus(f.ctx, sam, ticket.ID, "resolved")
	require.NoError(t, err)
	_, err = svc.Reply(f.ctx, lee, ticket.ID, "closing note", true)
	require.NoError(t, err)
	detail, err = svc.Get(f.ctx, lee, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, detail.Ticket.Status)
	assert.True(t, detail.IsStaff)
	assert.Len(t, detail.DepartmentStaff, 2)
}

func TestTicketService_OwnerReplyRecipients(t *testing.T) {
	f := newFixture(t)
	it, _ := f.seedHelpdesk(t)
	svc := NewTicketService(f.deps)
	ticket, err := svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "Email"})
	require.NoError(t, err)

	_, err = svc.Reply(f.ctx, alice, ticket.ID, "any update?", false)
	require.NoError(t, err)
	assert.Len(t, f.inbox(t, "sam"), 2)
	assert.Len(t, f.inbox(t, "lee"), 2)

	assigned, err := svc.Assign(f.ctx, sam, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam", assigned.AssignedToUsername)
	assert.Equal(t, domain.TicketStatusInProgress, assigned.Status)

	_, err = svc.Reply(f.ctx, alice, ticket.ID, "still broken", false)
	require.NoError(t, err)
	samInbox := f.inbox(t, "sam")
	require.Len(t, samInbox, 3)
	assert.Equal(t, "New reply on HD-2025-00001", samInbox[0].Title.EN)
	assert.Len(t, f.inbox(t, "lee"), 2)
	assert.Empty(t, f.inbox(t, "alice"))
}

func TestTicketService_StatusAndPriority(t *testing.T) {
	f := newFixture(t)
	it, _ := f.seedHelpdesk(t)
	svc := NewTicketService(f.deps)
	ticket, err := svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "Monitor"})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(f.ctx, hana, ticket.ID, "closed")
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.ChangeStatus(f.ctx, sam, ticket.ID, "done")
	assertCode(t, err, errorutil.CodeValidation)

	resolved, err := svc.ChangeStatus(f.ctx, sam, ticket.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, resolved.Status)
	inbox := f.inbox(t, "alice")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Ticket HD-2025-00001 status updated to Resolved", inbox[0].Title.EN)

	reopened, err := svc.ChangeStatus(f.ctx, admin, ticket.ID, "open")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, reopened.Status)

	urgent, err := svc.ChangePriority(f.ctx, lee, ticket.ID, "urgent")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityUrgent, urgent.Priority)
	assert.Len(t, f.inbox(t, "alice"), 2)
}

func TestTicketService_Queues(t *testing.T) {
	f := newFixture(t)
	it, hr := f.seedHelpdesk(t)
	svc := NewTicketService(f.deps)
	_, err := svc.Create(f.ctx, alice, TicketInput{CategoryID: it.ID, Title: "Keyboard", Priority: "high"})
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, bob, TicketInput{CategoryID: hr.ID, Title: "Payslip"})
	require.NoError(t, err)

	itQueue, err := svc.ListForStaff(f.ctx, sam, "", "")
	require.NoError(t, err)
	require.Len(t, itQueue, 1)
	assert.Equal(t, "Keyboard", itQueue[0].Title)

	high, err := svc.ListForStaff(f.ctx, hana, "all", "high")
	require.NoError(t, err)
	assert.Empty(t, high)

	_, err = svc.ListForStaff(f.ctx, bob, "", "")
	assertCode(t, err, errorutil.CodeForbidden)

	everything, err := svc.ListForStaff(f.ctx, admin, "open", "")
	require.NoError(t, err)
	assert.Len(t, everything, 2)

	hrOnly, err := svc.ListAll(f.ctx, admin, TicketListFilter{Department: "HR"})
	require.NoError(t, err)
	require.Len(t, hrOnly, 1)
	assert.Equal(t, "Payslip", hrOnly[0].Title)

	_, err = svc.Get(f.ctx, bob, itQueue[0].ID)
	assertCode(t, err, errorutil.CodeForbidden)

	isStaff, err := svc.IsStaff(f.ctx, "lee")
	require.NoError(t, err)
	assert.True(t, isStaff)
	isStaff, err = svc.IsStaff(f.ctx, "bob")
	require.NoError(t, err)
	assert.False(t, isStaff)
}
