package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) user.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileColumns = `id, full_name, email, role, is_active, created_at, updated_at`

func scanProfile(row pgx.Row) (user.Profile, error) {
	var p user.Profile
	var role string
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	p.Role = user.Role(role)
	return p, err
}

// GetByID implements user.ProfileRepository.
func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetByEmail implements user.ProfileRepository.
func (r *profileRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER($1)`
	p, err := scanProfile(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return p, nil
}

// List implements user.ProfileRepository.
func (r *profileRepositoryImpl) List(ctx context.Context, filter user.ProfileFilter) ([]user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	query := `SELECT ` + profileColumns + ` FROM profiles`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY full_name, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]user.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// Create implements user.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, profile user.Profile) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (id, full_name, email, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + profileColumns

	created, err := scanProfile(q.QueryRow(ctx, query,
		profile.ID, profile.FullName, profile.Email, string(profile.Role), profile.IsActive,
	))
	if err != nil {
		if code, _ := pgErrorCode(err); code == codeUniqueViolation {
			return user.Profile{}, user.ErrProfileEmailExists
		}
		return user.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}

// Update implements user.ProfileRepository.
func (r *profileRepositoryImpl) Update(ctx context.Context, req user.UpdateProfileRequest) (user.Profile, error) {
	q := GetQuerier(ctx, r.db)

	updates := []string{"updated_at = NOW()"}
	args := []interface{}{}
	if req.FullName != nil {
		args = append(args, strings.TrimSpace(*req.FullName))
		updates = append(updates, fmt.Sprintf("full_name = $%d", len(args)))
	}
	if req.Role != nil {
		args = append(args, *req.Role)
		updates = append(updates, fmt.Sprintf("role = $%d", len(args)))
	}
	if req.IsActive != nil {
		args = append(args, *req.IsActive)
		updates = append(updates, fmt.Sprintf("is_active = $%d", len(args)))
	}
	args = append(args, req.ID)

	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(updates, ", "), len(args), profileColumns)

	updated, err := scanProfile(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}
