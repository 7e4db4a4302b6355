package rate

import "time"

// Rate is an hourly wage in whole VND for one activity, valid from EffectiveFrom
// through EffectiveTo inclusive. A nil EffectiveTo means still in effect.
type Rate struct {
	ID            string
	ActivityID    string
	HourlyVND     int64
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Covers reports whether the rate window contains at.
func (r Rate) Covers(at time.Time) bool {
	if r.EffectiveFrom.After(at) {
		return false
	}
	return r.EffectiveTo == nil || !r.EffectiveTo.Before(at)
}

// Supersedes reports whether r wins over other when both cover the same instant:
// later effective_from, then later created_at, then greater ID.
func (r Rate) Supersedes(other Rate) bool {
	if !r.EffectiveFrom.Equal(other.EffectiveFrom) {
		return r.EffectiveFrom.After(other.EffectiveFrom)
	}
	if !r.CreatedAt.Equal(other.CreatedAt) {
		return r.CreatedAt.After(other.CreatedAt)
	}
	return r.ID > other.ID
}
