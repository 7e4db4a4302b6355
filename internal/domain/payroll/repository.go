package payroll

import (
	"context"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

type PeriodRepository interface {
	GetByMonth(ctx context.Context, ym localtime.YearMonth) (Period, error)
	List(ctx context.Context) ([]Period, error)
	Create(ctx context.Context, p Period) (Period, error)
	// UpdateStatus persists Status, ClosedBy and ClosedAt.
	UpdateStatus(ctx context.Context, p Period) (Period, error)
	Delete(ctx context.Context, id string) error
	// ListClosedSince returns closed periods from ym onwards.
	ListClosedSince(ctx context.Context, ym localtime.YearMonth) ([]Period, error)
}

type ConfirmationRepository interface {
	Get(ctx context.Context, periodID, userID string) (Confirmation, error)
	ListByPeriod(ctx context.Context, periodID string) ([]Confirmation, error)
	// Upsert creates or refreshes the confirmation keyed by (period, user).
	Upsert(ctx context.Context, c Confirmation) (Confirmation, error)
	Delete(ctx context.Context, periodID, userID string) error
	SetPaid(ctx context.Context, periodID, userID string, paidAt *time.Time, paidBy *string) (Confirmation, error)
	CountPaid(ctx context.Context, periodID string) (int, error)
}

type SnapshotRepository interface {
	Get(ctx context.Context, periodID string) (Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Delete(ctx context.Context, periodID string) error
}

// CacheGeneration identifies the cache epoch a computation started in.
// Invalidate moves to a new epoch; entries stored under an older one are never read.
type CacheGeneration int64

// SummaryCache memoizes live computations. Lookups that fail are misses.
//
// Callers take the generation before loading any data and pass the same value
// to Get and Set, so a result computed from pre-write data cannot land in the
// epoch that follows the write.
type SummaryCache interface {
	Generation(ctx context.Context) (CacheGeneration, bool)
	GetSummaries(ctx context.Context, gen CacheGeneration, ym localtime.YearMonth, employeeID *string) ([]EmployeeSummary, bool)
	SetSummaries(ctx context.Context, gen CacheGeneration, ym localtime.YearMonth, employeeID *string, v []EmployeeSummary)
	GetDaily(ctx context.Context, gen CacheGeneration, ym localtime.YearMonth, employeeID *string) ([]DailyEntry, bool)
	SetDaily(ctx context.Context, gen CacheGeneration, ym localtime.YearMonth, employeeID *string, v []DailyEntry)
	CacheInvalidator
}

// CacheInvalidator is called after any write that can change a computed payroll.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ReminderLedger records which confirmation reminders were sent.
type ReminderLedger interface {
	// MarkReminded returns false when userID was already reminded about ym on day.
	MarkReminded(ctx context.Context, ym localtime.YearMonth, userID string, day string) (bool, error)
	// Forget releases a mark whose reminder could not be queued.
	Forget(ctx context.Context, ym localtime.YearMonth, userID string, day string) error
}
