package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
)

type activityRepository struct{ s *Store }

func (s *Store) Activities() activity.ActivityRepository { return activityRepository{s} }

func (r activityRepository) GetByID(_ context.Context, id string) (activity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.activities[id]
	if !ok {
		return activity.Activity{}, activity.ErrActivityNotFound
	}
	return a, nil
}

func (r activityRepository) List(_ context.Context, activeOnly bool) ([]activity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]activity.Activity, 0, len(r.s.activities))
	for _, a := range r.s.activities {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// nameTaken is called with mu held.
func (r activityRepository) nameTaken(name, exceptID string) bool {
	for _, a := range r.s.activities {
		if a.ID != exceptID && strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

func (r activityRepository) Create(_ context.Context, a activity.Activity) (activity.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(a.Name, "") {
		return activity.Activity{}, activity.ErrActivityNameExists
	}
	a.ID = r.s.nextID()
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.activities[a.ID] = a
	return a, nil
}

func (r activityRepository) Update(_ context.Context, id string, name string) (activity.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.activities[id]
	if !ok {
		return activity.Activity{}, activity.ErrActivityNotFound
	}
	if r.nameTaken(name, id) {
		return activity.Activity{}, activity.ErrActivityNameExists
	}
	a.Name = name
	a.UpdatedAt = r.s.now()
	r.s.activities[id] = a
	return a, nil
}

func (r activityRepository) SetActive(_ context.Context, id string, active bool) (activity.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.activities[id]
	if !ok {
		return activity.Activity{}, activity.ErrActivityNotFound
	}
	a.IsActive = active
	a.UpdatedAt = r.s.now()
	r.s.activities[id] = a
	return a, nil
}

type rateRepository struct{ s *Store }

func (s *Store) Rates() rate.RateRepository { return rateRepository{s} }

func (r rateRepository) GetByID(_ context.Context, id string) (rate.Rate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rt, ok := r.s.rates[id]
	if !ok {
		return rate.Rate{}, rate.ErrRateNotFound
	}
	return rt, nil
}

func (r rateRepository) List(_ context.Context, activityID *string) ([]rate.Rate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]rate.Rate, 0, len(r.s.rates))
	for _, rt := range r.s.rates {
		if activityID != nil && rt.ActivityID != *activityID {
			continue
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Supersedes(out[j]) })
	return out, nil
}

func (r rateRepository) check(rt rate.Rate) error {
	if _, ok := r.s.activities[rt.ActivityID]; !ok {
		return rate.ErrActivityNotFound
	}
	if rt.EffectiveTo != nil && !rt.EffectiveTo.After(rt.EffectiveFrom) {
		return rate.ErrInvalidRateWindow
	}
	return nil
}

func (r rateRepository) Create(_ context.Context, rt rate.Rate) (rate.Rate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(rt); err != nil {
		return rate.Rate{}, err
	}
	rt.ID = r.s.nextID()
	rt.CreatedAt = r.s.now()
	rt.UpdatedAt = rt.CreatedAt
	r.s.rates[rt.ID] = rt
	return rt, nil
}

func (r rateRepository) Update(_ context.Context, rt rate.Rate) (rate.Rate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.rates[rt.ID]
	if !ok {
		return rate.Rate{}, rate.ErrRateNotFound
	}
	rt.ActivityID = existing.ActivityID
	if err := r.check(rt); err != nil {
		return rate.Rate{}, err
	}
	rt.CreatedAt = existing.CreatedAt
	rt.UpdatedAt = r.s.now()
	r.s.rates[rt.ID] = rt
	return rt, nil
}
