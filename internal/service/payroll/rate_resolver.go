package payroll

import (
	"sort"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
)

// RateResolver picks the hourly rate of an activity at an instant.
// It is built from a snapshot of rates and never changes afterwards.
type RateResolver struct {
	byActivity map[string][]rate.Rate
}

func NewRateResolver(rates []rate.Rate) *RateResolver {
	byActivity := make(map[string][]rate.Rate)
	for _, r := range rates {
		byActivity[r.ActivityID] = append(byActivity[r.ActivityID], r)
	}
	// Winner first, so Resolve can stop at the first covering rate.
	for _, list := range byActivity {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Supersedes(list[j]) })
	}
	return &RateResolver{byActivity: byActivity}
}

// Resolve returns the rate covering at with the latest effective_from.
func (r *RateResolver) Resolve(activityID string, at time.Time) (rate.Rate, bool) {
	for _, candidate := range r.byActivity[activityID] {
		if candidate.Covers(at) {
			return candidate, true
		}
	}
	return rate.Rate{}, false
}

// HourlyAt is Resolve reduced to the amount; no covering rate pays 0.
func (r *RateResolver) HourlyAt(activityID string, at time.Time) int64 {
	if found, ok := r.Resolve(activityID, at); ok {
		return found.HourlyVND
	}
	return 0
}
