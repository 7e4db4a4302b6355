package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
)

type confirmationRepository struct {
	db *database.DB
}

func NewConfirmationRepository(db *database.DB) payroll.ConfirmationRepository {
	return &confirmationRepository{db: db}
}

const confirmationColumns = `id, period_id, user_id, confirmed_at, confirmed_by, paid_at, paid_by`

func scanConfirmation(row pgx.Row) (payroll.Confirmation, error) {
	var c payroll.Confirmation
	err := row.Scan(&c.ID, &c.PeriodID, &c.UserID, &c.ConfirmedAt, &c.ConfirmedBy, &c.PaidAt, &c.PaidBy)
	return c, err
}

func (r *confirmationRepository) Get(ctx context.Context, periodID, userID string) (payroll.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + confirmationColumns + ` FROM payroll_employee_confirmations WHERE period_id = $1 AND user_id = $2`
	c, err := scanConfirmation(q.QueryRow(ctx, query, periodID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Confirmation{}, payroll.ErrConfirmationNotFound
		}
		return payroll.Confirmation{}, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return c, nil
}

func (r *confirmationRepository) ListByPeriod(ctx context.Context, periodID string) ([]payroll.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + confirmationColumns + `
		FROM payroll_employee_confirmations
		WHERE period_id = $1
		ORDER BY confirmed_at, id`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmations: %w", err)
	}
	defer rows.Close()

	confirmations := make([]payroll.Confirmation, 0)
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confirmation: %w", err)
		}
		confirmations = append(confirmations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate confirmations: %w", err)
	}
	return confirmations, nil
}

// Upsert refreshes confirmed_at/by on repeat confirmation and leaves payment untouched.
func (r *confirmationRepository) Upsert(ctx context.Context, c payroll.Confirmation) (payroll.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_employee_confirmations (period_id, user_id, confirmed_at, confirmed_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (period_id, user_id)
		DO UPDATE SET confirmed_at = EXCLUDED.confirmed_at, confirmed_by = EXCLUDED.confirmed_by
		RETURNING ` + confirmationColumns

	saved, err := scanConfirmation(q.QueryRow(ctx, query, c.PeriodID, c.UserID, c.ConfirmedAt, c.ConfirmedBy))
	if err != nil {
		if code, _ := pgErrorCode(err); code == codeForeignKeyViolation {
			return payroll.Confirmation{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Confirmation{}, fmt.Errorf("failed to save confirmation: %w", err)
	}
	return saved, nil
}

func (r *confirmationRepository) Delete(ctx context.Context, periodID, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_employee_confirmations WHERE period_id = $1 AND user_id = $2`, periodID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete confirmation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrConfirmationNotFound
	}
	return nil
}

func (r *confirmationRepository) SetPaid(ctx context.Context, periodID, userID string, paidAt *time.Time, paidBy *string) (payroll.Confirmation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_employee_confirmations
		SET paid_at = $1, paid_by = $2
		WHERE period_id = $3 AND user_id = $4
		RETURNING ` + confirmationColumns

	c, err := scanConfirmation(q.QueryRow(ctx, query, paidAt, paidBy, periodID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Confirmation{}, payroll.ErrConfirmationNotFound
		}
		return payroll.Confirmation{}, fmt.Errorf("failed to update payment status: %w", err)
	}
	return c, nil
}

func (r *confirmationRepository) CountPaid(ctx context.Context, periodID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM payroll_employee_confirmations WHERE period_id = $1 AND paid_at IS NOT NULL`
	if err := q.QueryRow(ctx, query, periodID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count paid confirmations: %w", err)
	}
	return count, nil
}
