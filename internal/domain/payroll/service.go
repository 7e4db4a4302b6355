package payroll

import (
	"context"
	"time"
)

type PayrollService interface {
	// Computation
	GetSummary(ctx context.Context, query PayrollQuery) (PayrollSummaryResponse, error)
	GetDailyBreakdown(ctx context.Context, query PayrollQuery) (DailyBreakdownResponse, error)
	ExportWorkbook(ctx context.Context, query PayrollQuery) (ExportFile, error)

	// Periods
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	GetPeriod(ctx context.Context, month string) (PeriodResponse, error)
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	ClosePeriod(ctx context.Context, month string) (PeriodResponse, error)
	ReopenPeriod(ctx context.Context, month string) (PeriodResponse, error)
	DeletePeriod(ctx context.Context, month string) error

	// Confirmations
	ListConfirmations(ctx context.Context, month string) ([]ConfirmationResponse, error)
	Confirm(ctx context.Context, req ConfirmRequest) (ConfirmationResponse, error)
	Unconfirm(ctx context.Context, key ConfirmationKey) error
	MarkPaid(ctx context.Context, key ConfirmationKey) (ConfirmationResponse, error)
	UnmarkPaid(ctx context.Context, key ConfirmationKey) (ConfirmationResponse, error)

	// RemindUnconfirmed notifies employees who worked in a recently closed
	// period and have not confirmed it. Returns the number of reminders queued.
	RemindUnconfirmed(ctx context.Context, now time.Time) (int, error)
}
