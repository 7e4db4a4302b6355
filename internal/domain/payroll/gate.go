package payroll

import (
	"context"
	"fmt"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

// PeriodGate guards shift writes against closed payroll months.
// The status check and fn run atomically: a period cannot be closed
// between the check and the end of fn.
type PeriodGate interface {
	// WithOpenMonths runs fn if every month is open or has no period record.
	// It returns a *PeriodLockedError naming the first closed month otherwise.
	WithOpenMonths(ctx context.Context, months []localtime.YearMonth, fn func(ctx context.Context) error) error

	// WithPeriodExclusive runs fn while no shift write can touch month.
	// Used for creating, closing, reopening and deleting periods.
	WithPeriodExclusive(ctx context.Context, month localtime.YearMonth, fn func(ctx context.Context) error) error
}

// PeriodLockedError is returned when a write targets a closed month.
type PeriodLockedError struct {
	YearMonth localtime.YearMonth
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("payroll period %s is closed", e.YearMonth)
}

func (e *PeriodLockedError) Unwrap() error {
	return ErrPeriodLocked
}
