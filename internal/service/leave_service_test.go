package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

func validLeave() LeaveInput {
	return LeaveInput{
		ReasonEN:      "Family visit",
		DestinationEN: "Dubai",
		ManagerName:   "Mona Manager",
		Departure:     "2025-03-12T08:00",
		Return:        "2025-03-14T17:00",
	}
}

func TestLeaveService_CreateNumbersAndSnapshotsEmployee(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)

	first, err := svc.Create(f.ctx, alice, validLeave())
	require.NoError(t, err)
	assert.Equal(t, "LR-2025-00001", first.RequestNumber)
	assert.Equal(t, domain.LeaveStatusDraft, first.Status)
	assert.Equal(t, "Alice Adams", first.EmployeeName)
	assert.Equal(t, "Sales", first.EmployeeDepartment)
	assert.Equal(t, "E100", first.EmployeeNumber)
	assert.Equal(t, domain.LanguageEnglish, first.Reason.Language())

	second, err := svc.Create(f.ctx, bob, validLeave())
	require.NoError(t, err)
	assert.Equal(t, "LR-2025-00002", second.RequestNumber)

	evts := f.events()
	require.Len(t, evts, 2)
	assert.Equal(t, events.EventLeaveCreated, evts[0].Type)
	assert.Empty(t, evts[0].Recipients)
}

func TestLeaveService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)

	in := validLeave()
	in.Return = "2025-03-11T08:00"
	_, err := svc.Create(f.ctx, alice, in)
	assertCode(t, err, errorutil.CodeValidation)

	in = validLeave()
	in.Return = in.Departure
	_, err = svc.Create(f.ctx, alice, in)
	assertCode(t, err, errorutil.CodeValidation)

	in = validLeave()
	in.Departure = "12/03/2025"
	_, err = svc.Create(f.ctx, alice, in)
	assertCode(t, err, errorutil.CodeValidation)

	in = validLeave()
	in.Language = "ar"
	_, err = svc.Create(f.ctx, alice, in)
	assertCode(t, err, errorutil.CodeValidation)

	in = validLeave()
	in.ManagerName = " "
	_, err = svc.Create(f.ctx, alice, in)
	assertCode(t, err, errorutil.CodeValidation)

	_, err = svc.Create(f.ctx, nil, validLeave())
	assertCode(t, err, errorutil.CodeUnauth)

	list, err := svc.ListAll(f.ctx, admin, "all")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLeaveService_EditOnlyWhileEditable(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)
	leave, err := svc.Create(f.ctx, alice, validLeave())
	require.NoError(t, err)

	in := validLeave()
	in.DestinationEN = "Muscat"
	edited, err := svc.Edit(f.ctx, alice, leave.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Muscat", edited.Destination.EN)
	assert.Equal(t, domain.LeaveStatusDraft, edited.Status)

	_, err = svc.Edit(f.ctx, bob, leave.ID, in)
	assertCode(t, err, errorutil.CodeForbidden)

	_, err = svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatusApproved)
	require.NoError(t, err)

	in.DestinationEN = "Doha"
	_, err = svc.Edit(f.ctx, alice, leave.ID, in)
	assertCode(t, err, errorutil.CodeInvariant)

	stored, err := svc.Get(f.ctx, alice, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, "Muscat", stored.Destination.EN)
}

func TestLeaveService_MarkPrinted(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)
	leave, err := svc.Create(f.ctx, alice, validLeave())
	require.NoError(t, err)

	printed, err := svc.MarkPrinted(f.ctx, alice, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusPending, printed.Status)
	require.NotNil(t, printed.PrintedAt)

	_, err = svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatusApproved)
	require.NoError(t, err)
	again, err := svc.MarkPrinted(f.ctx, alice, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, again.Status)

	_, err = svc.MarkPrinted(f.ctx, bob, leave.ID)
	assertCode(t, err, errorutil.CodeForbidden)
}

func TestLeaveService_SetStatusNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)
	leave, err := svc.Create(f.ctx, alice, validLeave())
	require.NoError(t, err)

	_, err = svc.SetStatus(f.ctx, alice, leave.ID, domain.LeaveStatusApproved)
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatus("rejected"))
	assertCode(t, err, errorutil.CodeValidation)

	updated, err := svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, updated.Status)

	inbox := f.inbox(t, "alice")
	require.Len(t, inbox, 1)
	assert.Equal(t, "Request LR-2025-00001 marked as approved", inbox[0].Title.EN)
	assert.Equal(t, "/leave/1", inbox[0].Link)

	// archived back to draft is allowed for admins
	_, err = svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatusArchived)
	require.NoError(t, err)
	back, err := svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusDraft, back.Status)
	assert.Len(t, f.inbox(t, "alice"), 3)
}

func TestLeaveService_NotificationFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)
	leave, err := svc.Create(f.ctx, alice, validLeave())
	require.NoError(t, err)
	published := len(f.events())

	f.db.FailNotificationInserts(errors.New("disk full"))
	_, err = svc.SetStatus(f.ctx, admin, leave.ID, domain.LeaveStatusApproved)
	assertCode(t, err, errorutil.CodeInternal)
	f.db.FailNotificationInserts(nil)

	stored, err := svc.Get(f.ctx, admin, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusDraft, stored.Status)
	assert.Empty(t, f.inbox(t, "alice"))
	assert.Len(t, f.events(), published)
}

func TestLeaveService_Visibility(t *testing.T) {
	f := newFixture(t)
	svc := NewLeaveService(f.deps, nil)
	mine, err := svc.Create(f.ctx, alice, validLeave())
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, bob, validLeave())
	require.NoError(t, err)

	_, err = svc.Get(f.ctx, bob, mine.ID)
	assertCode(t, err, errorutil.CodeForbidden)
	_, err = svc.Get(f.ctx, alice, 999)
	assertCode(t, err, errorutil.CodeNotFound)

	list, err := svc.ListMine(f.ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = svc.ListAll(f.ctx, alice, "")
	assertCode(t, err, errorutil.CodeForbidden)
	all, err := svc.ListAll(f.ctx, admin, "draft")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLeaveService_ManagersWithoutProvider(t *testing.T) {
	f := newFixture(t)
	managers, err := NewLeaveService(f.deps, nil).Managers(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, managers)
}
