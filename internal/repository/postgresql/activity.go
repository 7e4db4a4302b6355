package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepository{db: db}
}

const activityColumns = `id, name, is_active, created_at, updated_at`

func scanActivity(row pgx.Row) (activity.Activity, error) {
	var a activity.Activity
	err := row.Scan(&a.ID, &a.Name, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanActivity(q.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return activity.Activity{}, activity.ErrActivityNotFound
		}
		return activity.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

func (r *activityRepository) List(ctx context.Context, activeOnly bool) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + activityColumns + ` FROM activities`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]activity.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) Create(ctx context.Context, a activity.Activity) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activities (name, is_active)
		VALUES ($1, $2)
		RETURNING ` + activityColumns

	created, err := scanActivity(q.QueryRow(ctx, query, a.Name, a.IsActive))
	if err != nil {
		if code, _ := pgErrorCode(err); code == codeUniqueViolation {
			return activity.Activity{}, activity.ErrActivityNameExists
		}
		return activity.Activity{}, fmt.Errorf("failed to create activity: %w", err)
	}
	return created, nil
}

func (r *activityRepository) Update(ctx context.Context, id string, name string) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activities SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + activityColumns

	updated, err := scanActivity(q.QueryRow(ctx, query, name, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return activity.Activity{}, activity.ErrActivityNotFound
		}
		if code, _ := pgErrorCode(err); code == codeUniqueViolation {
			return activity.Activity{}, activity.ErrActivityNameExists
		}
		return activity.Activity{}, fmt.Errorf("failed to update activity: %w", err)
	}
	return updated, nil
}

func (r *activityRepository) SetActive(ctx context.Context, id string, active bool) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activities SET is_active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + activityColumns

	updated, err := scanActivity(q.QueryRow(ctx, query, active, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return activity.Activity{}, activity.ErrActivityNotFound
		}
		return activity.Activity{}, fmt.Errorf("failed to set activity active flag: %w", err)
	}
	return updated, nil
}
