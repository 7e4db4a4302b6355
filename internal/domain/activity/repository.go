package activity

import "context"

type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (Activity, error)
	List(ctx context.Context, activeOnly bool) ([]Activity, error)
	Create(ctx context.Context, a Activity) (Activity, error)
	Update(ctx context.Context, id string, name string) (Activity, error)
	SetActive(ctx context.Context, id string, active bool) (Activity, error)
}
