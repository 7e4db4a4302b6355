package cron

import (
	"context"
	"log/slog"
	"time"
)

// Reminder is the part of the payroll service the reminder job needs.
type Reminder interface {
	RemindUnconfirmed(ctx context.Context, now time.Time) (int, error)
}

// PayrollJobs contains payroll-related cron jobs
type PayrollJobs struct {
	reminder Reminder
	interval time.Duration
	now      func() time.Time
}

func NewPayrollJobs(reminder Reminder, interval time.Duration) *PayrollJobs {
	return &PayrollJobs{reminder: reminder, interval: interval, now: time.Now}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("confirmation_reminder", j.interval, j.RemindUnconfirmed)
}

// RemindUnconfirmed nudges employees who have not confirmed a recently closed period.
func (j *PayrollJobs) RemindUnconfirmed(ctx context.Context) error {
	sent, err := j.reminder.RemindUnconfirmed(ctx, j.now())
	if err != nil {
		return err
	}
	if sent > 0 {
		slog.Info("payroll confirmation reminders queued", "count", sent)
	}
	return nil
}
