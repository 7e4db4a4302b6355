package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `s.id, s.employee_id, s.activity_id, s.start_at, s.end_at, s.template, s.is_manual, s.note, s.created_at, s.updated_at`

const recordSelect = `
	SELECT ` + shiftColumns + `, p.full_name, a.name
	FROM schedule_shifts s
	JOIN profiles p ON p.id = s.employee_id
	JOIN activities a ON a.id = s.activity_id`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var tmpl string
	err := row.Scan(&s.ID, &s.EmployeeID, &s.ActivityID, &s.StartAt, &s.EndAt, &tmpl, &s.IsManual, &s.Note, &s.CreatedAt, &s.UpdatedAt)
	s.Template = shift.Template(tmpl)
	return s, err
}

func scanRecord(row pgx.Row) (shift.Record, error) {
	var rec shift.Record
	var tmpl string
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.ActivityID, &rec.StartAt, &rec.EndAt, &tmpl, &rec.IsManual, &rec.Note,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName, &rec.ActivityName,
	)
	rec.Template = shift.Template(tmpl)
	return rec, err
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM schedule_shifts s WHERE s.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

func (r *shiftRepository) GetRecord(ctx context.Context, id string) (shift.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, recordSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Record{}, shift.ErrShiftNotFound
		}
		return shift.Record{}, fmt.Errorf("failed to get shift record: %w", err)
	}
	return rec, nil
}

func (r *shiftRepository) ListRecords(ctx context.Context, filter shift.Filter) ([]shift.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := recordSelect + ` WHERE s.start_at >= $1 AND s.start_at < $2`
	args := []interface{}{filter.StartFrom, filter.StartUntil}
	if filter.EmployeeID != nil {
		query += ` AND s.employee_id = $3`
		args = append(args, *filter.EmployeeID)
	}
	query += ` ORDER BY s.start_at, s.id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	records := make([]shift.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return records, nil
}

func (r *shiftRepository) ListForEmployee(ctx context.Context, employeeID string, from, until time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM schedule_shifts s
		WHERE s.employee_id = $1 AND s.start_at >= $2 AND s.start_at < $3
		ORDER BY s.start_at, s.id`

	rows, err := q.Query(ctx, query, employeeID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

func (r *shiftRepository) ListEmployeeIDs(ctx context.Context, from, until time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id::text
		FROM schedule_shifts
		WHERE start_at >= $1 AND start_at < $2
		ORDER BY 1`

	rows, err := q.Query(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled employees: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}
	return ids, nil
}

func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_shifts AS s (employee_id, activity_id, start_at, end_at, template, is_manual, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		s.EmployeeID, s.ActivityID, s.StartAt, s.EndAt, string(s.Template), s.IsManual, s.Note,
	))
	if err != nil {
		return shift.Shift{}, mapShiftError(err, "failed to create shift")
	}
	return created, nil
}

func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_shifts AS s
		SET employee_id = $1, activity_id = $2, start_at = $3, end_at = $4,
			template = $5, is_manual = $6, note = $7, updated_at = NOW()
		WHERE s.id = $8
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		s.EmployeeID, s.ActivityID, s.StartAt, s.EndAt, string(s.Template), s.IsManual, s.Note, s.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, mapShiftError(err, "failed to update shift")
	}
	return updated, nil
}

func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func mapShiftError(err error, msg string) error {
	code, constraint := pgErrorCode(err)
	switch code {
	case codeForeignKeyViolation:
		if constraint == "schedule_shifts_activity_id_fkey" {
			return shift.ErrActivityNotFound
		}
		return shift.ErrEmployeeNotFound
	case codeCheckViolation:
		if constraint == "schedule_shifts_interval_check" {
			return shift.ErrInvalidInterval
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
