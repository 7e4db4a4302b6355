package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())
	s.AddJob("ok", time.Hour, func(context.Context) error { return nil })
	s.AddJob("fails", time.Hour, func(context.Context) error { return errors.New("boom") })
	s.AddJob("panics", time.Hour, func(context.Context) error { panic("bad") })

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fails: boom")
	assert.Contains(t, err.Error(), "panics: panic: bad")
}

type fakeReminder struct {
	at   time.Time
	sent int
}

func (f *fakeReminder) RemindUnconfirmed(_ context.Context, now time.Time) (int, error) {
	f.at = now
	return f.sent, nil
}

func TestPayrollJobs(t *testing.T) {
	r := &fakeReminder{sent: 2}
	jobs := NewPayrollJobs(r, time.Hour)
	fixed := time.Date(2025, 10, 3, 2, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time { return fixed }

	s := NewScheduler(context.Background())
	jobs.RegisterJobs(s)
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, fixed, r.at)
}
