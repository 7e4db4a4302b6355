package activity

import (
	"context"
	"log/slog"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
)

type ActivityServiceImpl struct {
	activityRepo activity.ActivityRepository
	cache        payroll.CacheInvalidator
}

func NewActivityService(activityRepo activity.ActivityRepository, cache payroll.CacheInvalidator) activity.ActivityService {
	return &ActivityServiceImpl{activityRepo: activityRepo, cache: cache}
}

func (s *ActivityServiceImpl) List(ctx context.Context, activeOnly bool) ([]activity.ActivityResponse, error) {
	activities, err := s.activityRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]activity.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, activity.NewActivityResponse(a))
	}
	return responses, nil
}

func (s *ActivityServiceImpl) Get(ctx context.Context, id string) (activity.ActivityResponse, error) {
	a, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return activity.ActivityResponse{}, err
	}
	return activity.NewActivityResponse(a), nil
}

func (s *ActivityServiceImpl) Create(ctx context.Context, req activity.CreateActivityRequest) (activity.ActivityResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}
	created, err := s.activityRepo.Create(ctx, activity.Activity{Name: req.Name, IsActive: true})
	if err != nil {
		return activity.ActivityResponse{}, err
	}
	return activity.NewActivityResponse(created), nil
}

func (s *ActivityServiceImpl) Update(ctx context.Context, req activity.UpdateActivityRequest) (activity.ActivityResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}
	updated, err := s.activityRepo.Update(ctx, req.ID, req.Name)
	if err != nil {
		return activity.ActivityResponse{}, err
	}
	// Live payroll views carry activity names.
	s.invalidate(ctx)
	return activity.NewActivityResponse(updated), nil
}

func (s *ActivityServiceImpl) SetActive(ctx context.Context, id string, req activity.SetActiveRequest) (activity.ActivityResponse, error) {
	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}
	updated, err := s.activityRepo.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		return activity.ActivityResponse{}, err
	}
	return activity.NewActivityResponse(updated), nil
}

func (s *ActivityServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate payroll cache", "error", err)
	}
}
