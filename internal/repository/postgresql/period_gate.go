package postgresql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

// periodLockNamespace is the first key of the two-int advisory lock; the second is yyyymm.
const periodLockNamespace int32 = 0x4d6f4c // "MoL"

type periodGate struct {
	db *database.DB
}

// NewPeriodGate returns a gate that serializes period changes against shift
// writes with transaction-scoped advisory locks.
func NewPeriodGate(db *database.DB) payroll.PeriodGate {
	return &periodGate{db: db}
}

func (g *periodGate) WithOpenMonths(ctx context.Context, months []localtime.YearMonth, fn func(ctx context.Context) error) error {
	months = distinctSorted(months)

	return InTransaction(ctx, g.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, g.db)

		for _, ym := range months {
			if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock_shared($1, $2)`, periodLockNamespace, int32(ym.Key())); err != nil {
				return fmt.Errorf("failed to lock payroll period %s: %w", ym, err)
			}

			var status string
			err := q.QueryRow(txCtx, `SELECT status FROM payroll_periods WHERE year_month = $1`, ym.String()).Scan(&status)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to check payroll period %s: %w", ym, err)
			}
			if err == nil && payroll.PeriodStatus(status) == payroll.PeriodStatusClosed {
				return &payroll.PeriodLockedError{YearMonth: ym}
			}
		}

		return fn(txCtx)
	})
}

func (g *periodGate) WithPeriodExclusive(ctx context.Context, month localtime.YearMonth, fn func(ctx context.Context) error) error {
	return InTransaction(ctx, g.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, g.db)
		if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock($1, $2)`, periodLockNamespace, int32(month.Key())); err != nil {
			return fmt.Errorf("failed to lock payroll period %s: %w", month, err)
		}
		return fn(txCtx)
	})
}

// Months are locked in ascending order.
func distinctSorted(months []localtime.YearMonth) []localtime.YearMonth {
	seen := make(map[int]bool, len(months))
	out := make([]localtime.YearMonth, 0, len(months))
	for _, m := range months {
		if seen[m.Key()] {
			continue
		}
		seen[m.Key()] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
