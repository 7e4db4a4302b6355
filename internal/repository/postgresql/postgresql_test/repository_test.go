package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = localtime.Zone(localtime.DefaultOffsetMinutes)

func TestProfileRepository(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewProfileRepository(s.DB)

	p := s.createProfile(t, "Nguyễn Văn An", user.RoleEmployee)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.FullName, got.FullName)
		assert.True(t, got.IsActive)
	})

	t.Run("email is unique case-insensitively", func(t *testing.T) {
		dup := p
		dup.ID = "7f1c8a52-3c3e-4b8e-9d7e-0a5f7e4c9b11"
		dup.Email = p.Email
		_, err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, user.ErrProfileEmailExists)
	})

	t.Run("partial update", func(t *testing.T) {
		inactive := false
		got, err := repo.Update(ctx, user.UpdateProfileRequest{ID: p.ID, IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.Equal(t, p.FullName, got.FullName)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, user.ErrProfileNotFound)
	})
}

func TestActivityAndRateRepository(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	activities := postgresql.NewActivityRepository(s.DB)
	rates := postgresql.NewRateRepository(s.DB)

	barista := s.createActivity(t, "Barista")

	_, err := activities.Create(ctx, activity.Activity{Name: "barista", IsActive: true})
	assert.ErrorIs(t, err, activity.ErrActivityNameExists)

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, ict)
	created, err := rates.Create(ctx, rate.Rate{ActivityID: barista.ID, HourlyVND: 25000, EffectiveFrom: from})
	require.NoError(t, err)
	assert.Nil(t, created.EffectiveTo)

	before := from.Add(-time.Hour)
	_, err = rates.Create(ctx, rate.Rate{ActivityID: barista.ID, HourlyVND: 1, EffectiveFrom: from, EffectiveTo: &before})
	assert.ErrorIs(t, err, rate.ErrInvalidRateWindow)

	list, err := rates.List(ctx, &barista.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(25000), list[0].HourlyVND)
	assert.True(t, list[0].EffectiveFrom.Equal(from))
}

func TestShiftRepository(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(s.DB)

	emp := s.createProfile(t, "Trần Thị Bình", user.RoleEmployee)
	act := s.createActivity(t, "Cashier")
	month := localtime.MonthRange(localtime.MustParseYearMonth("2025-09"), ict)

	created, err := repo.Create(ctx, shift.Shift{
		EmployeeID: emp.ID,
		ActivityID: act.ID,
		StartAt:    month.Start,
		EndAt:      month.Start.Add(6 * time.Hour),
		Template:   shift.TemplateMorning,
	})
	require.NoError(t, err)

	records, err := repo.ListRecords(ctx, shift.Filter{StartFrom: month.Start, StartUntil: month.Until()})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Trần Thị Bình", records[0].EmployeeName)
	assert.Equal(t, "Cashier", records[0].ActivityName)

	prev := localtime.MonthRange(localtime.MustParseYearMonth("2025-08"), ict)
	records, err = repo.ListRecords(ctx, shift.Filter{StartFrom: prev.Start, StartUntil: prev.Until()})
	require.NoError(t, err)
	assert.Empty(t, records)

	ids, err := repo.ListEmployeeIDs(ctx, month.Start, month.Until())
	require.NoError(t, err)
	assert.Equal(t, []string{emp.ID}, ids)

	_, err = repo.Create(ctx, shift.Shift{
		EmployeeID: emp.ID,
		ActivityID: "00000000-0000-0000-0000-000000000000",
		StartAt:    month.Start,
		EndAt:      month.Start.Add(time.Hour),
		Template:   shift.TemplateCustom,
	})
	assert.ErrorIs(t, err, shift.ErrActivityNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), shift.ErrShiftNotFound)
}

func TestPeriodAndConfirmationRepository(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	periods := postgresql.NewPeriodRepository(s.DB)
	confirmations := postgresql.NewConfirmationRepository(s.DB)
	snapshots := postgresql.NewSnapshotRepository(s.DB)

	admin := s.createProfile(t, "Admin", user.RoleAdmin)
	emp := s.createProfile(t, "Lê Cường", user.RoleEmployee)
	ym := localtime.MustParseYearMonth("2025-09")

	p, err := periods.Create(ctx, payroll.NewPeriod(ym))
	require.NoError(t, err)
	assert.Equal(t, ym, p.YearMonth)

	_, err = periods.Create(ctx, payroll.NewPeriod(ym))
	assert.ErrorIs(t, err, payroll.ErrPeriodAlreadyExists)

	require.NoError(t, p.Close(admin.ID, time.Now()))
	p, err = periods.UpdateStatus(ctx, p)
	require.NoError(t, err)
	assert.True(t, p.IsClosed())

	closed, err := periods.ListClosedSince(ctx, ym.Prev())
	require.NoError(t, err)
	assert.Len(t, closed, 1)

	require.NoError(t, snapshots.Save(ctx, payroll.Snapshot{PeriodID: p.ID, YearMonth: ym, ComputedAt: time.Now()}))
	snap, err := snapshots.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Summaries)

	c, err := confirmations.Upsert(ctx, payroll.Confirmation{PeriodID: p.ID, UserID: emp.ID, ConfirmedAt: time.Now(), ConfirmedBy: emp.ID})
	require.NoError(t, err)
	assert.False(t, c.IsPaid())

	now := time.Now()
	c, err = confirmations.SetPaid(ctx, p.ID, emp.ID, &now, &admin.ID)
	require.NoError(t, err)
	assert.True(t, c.IsPaid())

	paid, err := confirmations.CountPaid(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, paid)

	// Re-confirming keeps the payment.
	c, err = confirmations.Upsert(ctx, payroll.Confirmation{PeriodID: p.ID, UserID: emp.ID, ConfirmedAt: time.Now(), ConfirmedBy: admin.ID})
	require.NoError(t, err)
	assert.True(t, c.IsPaid())
	assert.Equal(t, admin.ID, c.ConfirmedBy)
}

func TestPeriodGate(t *testing.T) {
	s := NewTestDatabase(t)
	ctx := context.Background()
	gate := postgresql.NewPeriodGate(s.DB)
	periods := postgresql.NewPeriodRepository(s.DB)

	admin := s.createProfile(t, "Admin", user.RoleAdmin)
	sep := localtime.MustParseYearMonth("2025-09")
	oct := sep.Next()

	ran := false
	require.NoError(t, gate.WithOpenMonths(ctx, []localtime.YearMonth{sep}, func(ctx context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran, "months without a period record are open")

	p, err := periods.Create(ctx, payroll.NewPeriod(sep))
	require.NoError(t, err)
	require.NoError(t, p.Close(admin.ID, time.Now()))
	_, err = periods.UpdateStatus(ctx, p)
	require.NoError(t, err)

	err = gate.WithOpenMonths(ctx, []localtime.YearMonth{oct, sep}, func(ctx context.Context) error {
		t.Fatal("fn must not run for a closed month")
		return nil
	})
	var locked *payroll.PeriodLockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, sep, locked.YearMonth)
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)

	t.Run("exclusive lock waits for shift writers", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)

		go func() {
			done <- gate.WithOpenMonths(ctx, []localtime.YearMonth{oct}, func(ctx context.Context) error {
				close(entered)
				<-release
				return nil
			})
		}()
		<-entered

		acquired := make(chan struct{})
		go func() {
			_ = gate.WithPeriodExclusive(ctx, oct, func(ctx context.Context) error {
				close(acquired)
				return nil
			})
		}()

		select {
		case <-acquired:
			t.Fatal("exclusive lock acquired while a writer held the month")
		case <-time.After(200 * time.Millisecond):
		}

		close(release)
		require.NoError(t, <-done)
		select {
		case <-acquired:
		case <-time.After(5 * time.Second):
			t.Fatal("exclusive lock never acquired")
		}
	})
}
