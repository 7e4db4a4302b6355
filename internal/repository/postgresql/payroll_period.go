package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) payroll.PeriodRepository {
	return &periodRepository{db: db}
}

const periodColumns = `id, year_month, status, closed_by, closed_at, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.Period, error) {
	var p payroll.Period
	var ym, status string
	if err := row.Scan(&p.ID, &ym, &status, &p.ClosedBy, &p.ClosedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return payroll.Period{}, err
	}
	parsed, err := localtime.ParseYearMonth(strings.TrimSpace(ym))
	if err != nil {
		return payroll.Period{}, fmt.Errorf("stored period %q: %w", ym, err)
	}
	p.YearMonth = parsed
	p.Status = payroll.PeriodStatus(status)
	return p, nil
}

func (r *periodRepository) GetByMonth(ctx context.Context, ym localtime.YearMonth) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPeriod(q.QueryRow(ctx, `SELECT `+periodColumns+` FROM payroll_periods WHERE year_month = $1`, ym.String()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	return p, nil
}

func (r *periodRepository) List(ctx context.Context) ([]payroll.Period, error) {
	return r.list(ctx, `SELECT `+periodColumns+` FROM payroll_periods ORDER BY year_month DESC`)
}

func (r *periodRepository) ListClosedSince(ctx context.Context, ym localtime.YearMonth) ([]payroll.Period, error) {
	return r.list(ctx, `
		SELECT `+periodColumns+` FROM payroll_periods
		WHERE status = 'closed' AND year_month >= $1
		ORDER BY year_month`, ym.String())
}

func (r *periodRepository) list(ctx context.Context, query string, args ...interface{}) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	periods := make([]payroll.Period, 0)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll periods: %w", err)
	}
	return periods, nil
}

func (r *periodRepository) Create(ctx context.Context, p payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (year_month, status, closed_by, closed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query, p.YearMonth.String(), string(p.Status), p.ClosedBy, p.ClosedAt))
	if err != nil {
		if code, _ := pgErrorCode(err); code == codeUniqueViolation {
			return payroll.Period{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}
	return created, nil
}

func (r *periodRepository) UpdateStatus(ctx context.Context, p payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $1, closed_by = $2, closed_at = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + periodColumns

	updated, err := scanPeriod(q.QueryRow(ctx, query, string(p.Status), p.ClosedBy, p.ClosedAt, p.ID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to update payroll period: %w", err)
	}
	return updated, nil
}

func (r *periodRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}
	return nil
}
