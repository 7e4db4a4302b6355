package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
)

type rateRepository struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) rate.RateRepository {
	return &rateRepository{db: db}
}

const rateColumns = `id, activity_id, hourly_vnd, effective_from, effective_to, created_at, updated_at`

func scanRate(row pgx.Row) (rate.Rate, error) {
	var rt rate.Rate
	err := row.Scan(&rt.ID, &rt.ActivityID, &rt.HourlyVND, &rt.EffectiveFrom, &rt.EffectiveTo, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

func (r *rateRepository) GetByID(ctx context.Context, id string) (rate.Rate, error) {
	q := GetQuerier(ctx, r.db)

	rt, err := scanRate(q.QueryRow(ctx, `SELECT `+rateColumns+` FROM rates WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return rate.Rate{}, rate.ErrRateNotFound
		}
		return rate.Rate{}, fmt.Errorf("failed to get rate: %w", err)
	}
	return rt, nil
}

func (r *rateRepository) List(ctx context.Context, activityID *string) ([]rate.Rate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rateColumns + ` FROM rates`
	args := []interface{}{}
	if activityID != nil {
		query += ` WHERE activity_id = $1`
		args = append(args, *activityID)
	}
	query += ` ORDER BY activity_id, effective_from DESC, created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	rates := make([]rate.Rate, 0)
	for rows.Next() {
		rt, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}
	return rates, nil
}

func (r *rateRepository) Create(ctx context.Context, rt rate.Rate) (rate.Rate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO rates (activity_id, hourly_vnd, effective_from, effective_to)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + rateColumns

	created, err := scanRate(q.QueryRow(ctx, query, rt.ActivityID, rt.HourlyVND, rt.EffectiveFrom, rt.EffectiveTo))
	if err != nil {
		return rate.Rate{}, mapRateError(err, "failed to create rate")
	}
	return created, nil
}

func (r *rateRepository) Update(ctx context.Context, rt rate.Rate) (rate.Rate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rates
		SET hourly_vnd = $1, effective_from = $2, effective_to = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + rateColumns

	updated, err := scanRate(q.QueryRow(ctx, query, rt.HourlyVND, rt.EffectiveFrom, rt.EffectiveTo, rt.ID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return rate.Rate{}, rate.ErrRateNotFound
		}
		return rate.Rate{}, mapRateError(err, "failed to update rate")
	}
	return updated, nil
}

func mapRateError(err error, msg string) error {
	switch code, _ := pgErrorCode(err); code {
	case codeForeignKeyViolation:
		return rate.ErrActivityNotFound
	case codeCheckViolation:
		return rate.ErrInvalidRateWindow
	}
	return fmt.Errorf("%s: %w", msg, err)
}
