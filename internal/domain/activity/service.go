package activity

import "context"

type ActivityService interface {
	List(ctx context.Context, activeOnly bool) ([]ActivityResponse, error)
	Get(ctx context.Context, id string) (ActivityResponse, error)
	Create(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error)
	Update(ctx context.Context, req UpdateActivityRequest) (ActivityResponse, error)
	SetActive(ctx context.Context, id string, req SetActiveRequest) (ActivityResponse, error)
}
