package shift

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/notification"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/cache"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
	"github.com/mol-coffee/mol-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = localtime.Zone(localtime.DefaultOffsetMinutes)

type recordingNotifier struct {
	mu    sync.Mutex
	types []notification.NotificationType
}

func (n *recordingNotifier) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.types = append(n.types, req.Type)
	return nil
}

func (n *recordingNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, r := range reqs {
		_ = n.QueueNotification(ctx, r)
	}
	return nil
}

type fixture struct {
	store    *memory.Store
	svc      shift.ShiftService
	notifier *recordingNotifier

	admin, anh, binh user.Profile
	barista          activity.Activity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: memory.NewStore(), notifier: &recordingNotifier{}}

	var err error
	f.admin, err = f.store.Profiles().Create(ctx, user.Profile{FullName: "Quản Lý", Email: "admin@mol.vn", Role: user.RoleAdmin, IsActive: true})
	require.NoError(t, err)
	f.anh, err = f.store.Profiles().Create(ctx, user.Profile{FullName: "Anh", Email: "anh@mol.vn", Role: user.RoleEmployee, IsActive: true})
	require.NoError(t, err)
	f.binh, err = f.store.Profiles().Create(ctx, user.Profile{FullName: "Bình", Email: "binh@mol.vn", Role: user.RoleEmployee, IsActive: true})
	require.NoError(t, err)
	f.barista, err = f.store.Activities().Create(ctx, activity.Activity{Name: "Barista", IsActive: true})
	require.NoError(t, err)

	f.svc = NewShiftService(f.store.Shifts(), f.store.Profiles(), f.store.Activities(), f.store.Gate(), cache.Noop{}, f.notifier, ict)
	return f
}

func as(p user.Profile) context.Context {
	return user.WithActor(context.Background(), user.Actor{UserID: p.ID, FullName: p.FullName, Role: p.Role})
}

func (f *fixture) closeMonth(t *testing.T, month string) {
	t.Helper()
	p := payroll.NewPeriod(localtime.MustParseYearMonth(month))
	p.Status = payroll.PeriodStatusClosed
	_, err := f.store.Periods().Create(context.Background(), p)
	require.NoError(t, err)
}

func (f *fixture) morning(employeeID, date string) shift.CreateShiftRequest {
	return shift.CreateShiftRequest{ShiftInput: shift.ShiftInput{
		EmployeeID: employeeID,
		ActivityID: f.barista.ID,
		Template:   string(shift.TemplateMorning),
		Date:       date,
	}}
}

func TestShiftService_CreateFromTemplate(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Create(as(f.admin), f.morning(f.anh.ID, "2025-09-01"))
	require.NoError(t, err)

	// 06:00 local on September 1st is 23:00 UTC on August 31st.
	assert.Equal(t, time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC), got.StartAt)
	assert.Equal(t, "2025-09-01", got.Date)
	assert.Equal(t, "2025-09", got.Month)
	assert.Equal(t, "Anh", got.EmployeeName)
	assert.Equal(t, "Barista", got.ActivityName)
	assert.False(t, got.IsManual)
	assert.Equal(t, []notification.NotificationType{notification.TypeShiftAssigned}, f.notifier.types)
}

func TestShiftService_CreateRejectsClosedMonth(t *testing.T) {
	f := newFixture(t)
	f.closeMonth(t, "2025-09")

	_, err := f.svc.Create(as(f.admin), f.morning(f.anh.ID, "2025-09-10"))
	var locked *payroll.PeriodLockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, "2025-09", locked.YearMonth.String())
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)

	// The month is decided in local time: 23:30 UTC on Sep 30th is October 1st.
	_, err = f.svc.Create(as(f.admin), shift.CreateShiftRequest{ShiftInput: shift.ShiftInput{
		EmployeeID: f.anh.ID,
		ActivityID: f.barista.ID,
		StartAt:    "2025-09-30T23:30:00Z",
		EndAt:      "2025-10-01T03:30:00Z",
	}})
	assert.NoError(t, err)
}

func TestShiftService_UpdateChecksBothMonths(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(as(f.admin), f.morning(f.anh.ID, "2025-10-05"))
	require.NoError(t, err)
	f.closeMonth(t, "2025-09")

	// Moving into a closed month.
	_, err = f.svc.Update(as(f.admin), shift.UpdateShiftRequest{ID: created.ID, ShiftInput: f.morning(f.anh.ID, "2025-09-28").ShiftInput})
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)

	// Staying in the open month.
	moved, err := f.svc.Update(as(f.admin), shift.UpdateShiftRequest{ID: created.ID, ShiftInput: f.morning(f.binh.ID, "2025-10-06").ShiftInput})
	require.NoError(t, err)
	assert.Equal(t, f.binh.ID, moved.EmployeeID)
	assert.Contains(t, f.notifier.types, notification.TypeShiftRemoved)
}

func TestShiftService_Conflicts(t *testing.T) {
	f := newFixture(t)
	ctx := as(f.admin)

	_, err := f.svc.Create(ctx, f.morning(f.anh.ID, "2025-10-01"))
	require.NoError(t, err)

	overlap := shift.CreateShiftRequest{ShiftInput: shift.ShiftInput{
		EmployeeID: f.anh.ID,
		ActivityID: f.barista.ID,
		StartAt:    "2025-10-01T04:00:00+07:00",
		EndAt:      "2025-10-01T07:00:00+07:00",
	}}
	_, err = f.svc.Create(ctx, overlap)
	var conflict *shift.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.ErrorIs(t, err, shift.ErrShiftOverlap)

	// Touching intervals do not overlap.
	_, err = f.svc.Create(ctx, shift.CreateShiftRequest{ShiftInput: shift.ShiftInput{
		EmployeeID: f.anh.ID,
		ActivityID: f.barista.ID,
		Template:   string(shift.TemplateAfternoon),
		Date:       "2025-10-01",
	}})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, shift.CreateShiftRequest{ShiftInput: shift.ShiftInput{
		EmployeeID: f.anh.ID,
		ActivityID: f.barista.ID,
		StartAt:    "2025-10-01T19:00:00+07:00",
		EndAt:      "2025-10-01T22:00:00+07:00",
	}})
	assert.ErrorIs(t, err, shift.ErrTooManyShiftsPerDay)
}

func TestShiftService_BulkCreate(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.BulkCreate(as(f.admin), shift.BulkCreateShiftRequest{
		EmployeeID: f.anh.ID,
		ActivityID: f.barista.ID,
		Template:   string(shift.TemplateAfternoon),
		From:       "2025-10-01",
		To:         "2025-10-14",
		Weekdays:   []time.Weekday{time.Monday, time.Wednesday},
	})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "2025-10-01", got[0].Date)
	assert.Equal(t, "2025-10-13", got[3].Date)

	// None of the batch is written when one day is closed.
	f.closeMonth(t, "2025-11")
	_, err = f.svc.BulkCreate(as(f.admin), shift.BulkCreateShiftRequest{
		EmployeeID: f.binh.ID,
		ActivityID: f.barista.ID,
		Template:   string(shift.TemplateMorning),
		From:       "2025-10-30",
		To:         "2025-11-02",
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)

	binhs, err := f.svc.List(as(f.admin), shift.ListShiftsQuery{Month: "2025-10", EmployeeID: &f.binh.ID})
	require.NoError(t, err)
	assert.Empty(t, binhs)

	_, err = f.svc.BulkCreate(as(f.admin), shift.BulkCreateShiftRequest{
		EmployeeID: f.binh.ID,
		ActivityID: f.barista.ID,
		Template:   string(shift.TemplateMorning),
		From:       "2025-10-04",
		To:         "2025-10-04",
		Weekdays:   []time.Weekday{time.Monday},
	})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestShiftService_EmployeeScope(t *testing.T) {
	f := newFixture(t)

	mine, err := f.svc.Create(as(f.admin), f.morning(f.anh.ID, "2025-10-01"))
	require.NoError(t, err)
	theirs, err := f.svc.Create(as(f.admin), f.morning(f.binh.ID, "2025-10-01"))
	require.NoError(t, err)

	list, err := f.svc.List(as(f.anh), shift.ListShiftsQuery{Month: "10-2025"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = f.svc.List(as(f.anh), shift.ListShiftsQuery{Month: "2025-10", EmployeeID: &f.binh.ID})
	assert.ErrorIs(t, err, shift.ErrForbidden)

	_, err = f.svc.Get(as(f.anh), theirs.ID)
	assert.ErrorIs(t, err, shift.ErrForbidden)

	all, err := f.svc.List(as(f.admin), shift.ListShiftsQuery{Month: "2025-10"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestShiftService_DeleteAndCalendar(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.Create(as(f.admin), f.morning(f.anh.ID, "2025-10-01"))
	require.NoError(t, err)
	b, err := f.svc.Create(as(f.admin), f.morning(f.anh.ID, "2025-10-02"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(as(f.admin), b.ID))
	_, err = f.svc.Get(as(f.admin), b.ID)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)

	feed, err := f.svc.Calendar(as(f.anh), shift.ListShiftsQuery{Month: "2025-10"})
	require.NoError(t, err)
	ics := string(feed)
	assert.Contains(t, ics, "UID:"+a.ID)
	assert.NotContains(t, ics, "UID:"+b.ID)
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
}
