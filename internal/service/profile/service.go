package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
)

type ProfileServiceImpl struct {
	profileRepo user.ProfileRepository
}

func NewProfileService(profileRepo user.ProfileRepository) user.ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo}
}

// Resolve implements user.ProfileService.
func (s *ProfileServiceImpl) Resolve(ctx context.Context, userID string) (user.Actor, error) {
	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return user.Actor{}, err
	}
	if !p.IsActive {
		return user.Actor{}, user.ErrProfileInactive
	}
	return user.Actor{UserID: p.ID, FullName: p.FullName, Role: p.Role}, nil
}

// Me implements user.ProfileService.
func (s *ProfileServiceImpl) Me(ctx context.Context) (user.ProfileResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	p, err := s.profileRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(p), nil
}

// List implements user.ProfileService.
func (s *ProfileServiceImpl) List(ctx context.Context, filter user.ProfileFilter) ([]user.ProfileResponse, error) {
	profiles, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]user.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, user.NewProfileResponse(p))
	}
	return responses, nil
}

// Get implements user.ProfileService.
func (s *ProfileServiceImpl) Get(ctx context.Context, id string) (user.ProfileResponse, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(p), nil
}

// Create implements user.ProfileService.
func (s *ProfileServiceImpl) Create(ctx context.Context, req user.CreateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	if _, err := s.profileRepo.GetByID(ctx, req.ID); err == nil {
		return user.ProfileResponse{}, user.ErrProfileExists
	} else if !errors.Is(err, user.ErrProfileNotFound) {
		return user.ProfileResponse{}, err
	}

	created, err := s.profileRepo.Create(ctx, user.Profile{
		ID:       req.ID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     user.Role(req.Role),
		IsActive: true,
	})
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(created), nil
}

// Update implements user.ProfileService.
func (s *ProfileServiceImpl) Update(ctx context.Context, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	if actor.UserID == req.ID {
		demoting := req.Role != nil && user.Role(*req.Role) != user.RoleAdmin
		deactivating := req.IsActive != nil && !*req.IsActive
		if actor.IsAdmin() && (demoting || deactivating) {
			return user.ProfileResponse{}, user.ErrCannotDemoteSelf
		}
	}

	updated, err := s.profileRepo.Update(ctx, req)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(updated), nil
}
