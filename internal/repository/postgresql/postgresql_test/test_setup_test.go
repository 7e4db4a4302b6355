package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
	"github.com/mol-coffee/mol-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// TestDatabaseSetup wraps the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL, migrates it once per run and
// truncates all tables. The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
	require.NoError(t, err)

	migrateOnce.Do(func() { migrateErr = database.RunMigrations(db) })
	require.NoError(t, migrateErr)

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all data
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"notification_preferences",
		"notifications",
		"payroll_snapshots",
		"payroll_employee_confirmations",
		"payroll_periods",
		"schedule_shifts",
		"rates",
		"activities",
		"profiles",
	}

	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func (s *TestDatabaseSetup) createProfile(t *testing.T, name string, role user.Role) user.Profile {
	t.Helper()
	repo := postgresql.NewProfileRepository(s.DB)
	p, err := repo.Create(context.Background(), user.Profile{
		ID:       uuid.New().String(),
		FullName: name,
		Email:    uuid.New().String() + "@mol.test",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return p
}

func (s *TestDatabaseSetup) createActivity(t *testing.T, name string) activity.Activity {
	t.Helper()
	repo := postgresql.NewActivityRepository(s.DB)
	a, err := repo.Create(context.Background(), activity.Activity{Name: name, IsActive: true})
	require.NoError(t, err)
	return a
}
