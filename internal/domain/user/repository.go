package user

import (
	"context"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]Profile, error)
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) (Profile, error)
}
