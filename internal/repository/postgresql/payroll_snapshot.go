package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

type snapshotRepository struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) payroll.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Get(ctx context.Context, periodID string) (payroll.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	var s payroll.Snapshot
	var ym string
	var summaries, daily []byte
	query := `SELECT period_id, year_month, summaries, daily, computed_at FROM payroll_snapshots WHERE period_id = $1`
	err := q.QueryRow(ctx, query, periodID).Scan(&s.PeriodID, &ym, &summaries, &daily, &s.ComputedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Snapshot{}, payroll.ErrSnapshotNotFound
		}
		return payroll.Snapshot{}, fmt.Errorf("failed to get payroll snapshot: %w", err)
	}

	if s.YearMonth, err = localtime.ParseYearMonth(ym); err != nil {
		return payroll.Snapshot{}, fmt.Errorf("stored snapshot month %q: %w", ym, err)
	}
	if err := json.Unmarshal(summaries, &s.Summaries); err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to decode snapshot summaries: %w", err)
	}
	if err := json.Unmarshal(daily, &s.Daily); err != nil {
		return payroll.Snapshot{}, fmt.Errorf("failed to decode snapshot daily entries: %w", err)
	}
	return s, nil
}

func (r *snapshotRepository) Save(ctx context.Context, s payroll.Snapshot) error {
	q := GetQuerier(ctx, r.db)

	if s.Summaries == nil {
		s.Summaries = []payroll.EmployeeSummary{}
	}
	if s.Daily == nil {
		s.Daily = []payroll.DailyEntry{}
	}
	summaries, err := json.Marshal(s.Summaries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot summaries: %w", err)
	}
	daily, err := json.Marshal(s.Daily)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot daily entries: %w", err)
	}

	query := `
		INSERT INTO payroll_snapshots (period_id, year_month, summaries, daily, computed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (period_id)
		DO UPDATE SET summaries = EXCLUDED.summaries, daily = EXCLUDED.daily, computed_at = EXCLUDED.computed_at`

	if _, err := q.Exec(ctx, query, s.PeriodID, s.YearMonth.String(), summaries, daily, s.ComputedAt); err != nil {
		return fmt.Errorf("failed to save payroll snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepository) Delete(ctx context.Context, periodID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_snapshots WHERE period_id = $1`, periodID); err != nil {
		return fmt.Errorf("failed to delete payroll snapshot: %w", err)
	}
	return nil
}
