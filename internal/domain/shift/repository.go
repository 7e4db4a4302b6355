package shift

import (
	"context"
	"time"
)

type Filter struct {
	// StartFrom and StartUntil bound start_at as [StartFrom, StartUntil).
	StartFrom  time.Time
	StartUntil time.Time
	EmployeeID *string
}

type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecords(ctx context.Context, filter Filter) ([]Record, error)
	// ListForEmployee returns shifts of one employee starting in [from, until).
	ListForEmployee(ctx context.Context, employeeID string, from, until time.Time) ([]Shift, error)
	// ListEmployeeIDs returns the distinct employees with a shift starting in [from, until).
	ListEmployeeIDs(ctx context.Context, from, until time.Time) ([]string, error)
	Create(ctx context.Context, s Shift) (Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	Delete(ctx context.Context, id string) error
}
