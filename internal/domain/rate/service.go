package rate

import "context"

type RateService interface {
	List(ctx context.Context, activityID *string) ([]RateResponse, error)
	Get(ctx context.Context, id string) (RateResponse, error)
	Create(ctx context.Context, req CreateRateRequest) (RateResponse, error)
	Update(ctx context.Context, req UpdateRateRequest) (RateResponse, error)
}
