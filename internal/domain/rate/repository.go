package rate

import "context"

type RateRepository interface {
	GetByID(ctx context.Context, id string) (Rate, error)
	// List returns every rate, optionally restricted to one activity.
	List(ctx context.Context, activityID *string) ([]Rate, error)
	Create(ctx context.Context, r Rate) (Rate, error)
	Update(ctx context.Context, r Rate) (Rate, error)
}
