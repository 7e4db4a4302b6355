package user

import "context"

type ProfileService interface {
	Me(ctx context.Context) (ProfileResponse, error)
	List(ctx context.Context, filter ProfileFilter) ([]ProfileResponse, error)
	Get(ctx context.Context, id string) (ProfileResponse, error)
	Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	Update(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)

	// Resolve loads the actor for an authenticated subject; used by the auth middleware.
	Resolve(ctx context.Context, userID string) (Actor, error)
}
