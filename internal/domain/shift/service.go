package shift

import "context"

type ShiftService interface {
	List(ctx context.Context, query ListShiftsQuery) ([]ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	BulkCreate(ctx context.Context, req BulkCreateShiftRequest) ([]ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error

	// Calendar renders the caller's shifts of a month as an iCalendar feed.
	Calendar(ctx context.Context, query ListShiftsQuery) ([]byte, error)
}
