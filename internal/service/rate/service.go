package rate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

type RateServiceImpl struct {
	rateRepo     rate.RateRepository
	activityRepo activity.ActivityRepository
	cache        payroll.CacheInvalidator
	loc          *time.Location
}

func NewRateService(
	rateRepo rate.RateRepository,
	activityRepo activity.ActivityRepository,
	cache payroll.CacheInvalidator,
	loc *time.Location,
) rate.RateService {
	return &RateServiceImpl{
		rateRepo:     rateRepo,
		activityRepo: activityRepo,
		cache:        cache,
		loc:          loc,
	}
}

func (s *RateServiceImpl) List(ctx context.Context, activityID *string) ([]rate.RateResponse, error) {
	rates, err := s.rateRepo.List(ctx, activityID)
	if err != nil {
		return nil, err
	}
	responses := make([]rate.RateResponse, 0, len(rates))
	for _, r := range rates {
		responses = append(responses, rate.NewRateResponse(r))
	}
	return responses, nil
}

func (s *RateServiceImpl) Get(ctx context.Context, id string) (rate.RateResponse, error) {
	r, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		return rate.RateResponse{}, err
	}
	return rate.NewRateResponse(r), nil
}

func (s *RateServiceImpl) Create(ctx context.Context, req rate.CreateRateRequest) (rate.RateResponse, error) {
	if err := req.Validate(); err != nil {
		return rate.RateResponse{}, err
	}

	if _, err := s.activityRepo.GetByID(ctx, req.ActivityID); err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			return rate.RateResponse{}, rate.ErrActivityNotFound
		}
		return rate.RateResponse{}, err
	}

	from, to := req.Bounds(s.loc)
	if err := checkWindow(from, to); err != nil {
		return rate.RateResponse{}, err
	}

	created, err := s.rateRepo.Create(ctx, rate.Rate{
		ActivityID:    req.ActivityID,
		HourlyVND:     req.HourlyVND,
		EffectiveFrom: from,
		EffectiveTo:   to,
	})
	if err != nil {
		return rate.RateResponse{}, err
	}

	s.invalidate(ctx)
	return rate.NewRateResponse(created), nil
}

func (s *RateServiceImpl) Update(ctx context.Context, req rate.UpdateRateRequest) (rate.RateResponse, error) {
	if err := req.Validate(); err != nil {
		return rate.RateResponse{}, err
	}

	existing, err := s.rateRepo.GetByID(ctx, req.ID)
	if err != nil {
		return rate.RateResponse{}, err
	}

	from, to := req.Bounds(s.loc)
	if err := checkWindow(from, to); err != nil {
		return rate.RateResponse{}, err
	}

	existing.HourlyVND = req.HourlyVND
	existing.EffectiveFrom = from
	existing.EffectiveTo = to

	updated, err := s.rateRepo.Update(ctx, existing)
	if err != nil {
		return rate.RateResponse{}, err
	}

	// Closed months keep their snapshot; only live views change.
	s.invalidate(ctx)
	return rate.NewRateResponse(updated), nil
}

func checkWindow(from time.Time, to *time.Time) error {
	if to != nil && !to.After(from) {
		return validator.ValidationErrors{{Field: "effective_to", Message: rate.ErrInvalidRateWindow.Error()}}
	}
	return nil
}

func (s *RateServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate payroll cache", "error", err)
	}
}
