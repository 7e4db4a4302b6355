package rate

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

type RateResponse struct {
	ID            string     `json:"id"`
	ActivityID    string     `json:"activity_id"`
	HourlyVND     int64      `json:"hourly_vnd"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewRateResponse(r Rate) RateResponse {
	return RateResponse{
		ID:            r.ID,
		ActivityID:    r.ActivityID,
		HourlyVND:     r.HourlyVND,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// CreateRateRequest accepts RFC3339 timestamps or local dates (YYYY-MM-DD).
// A date-only effective_to covers the whole of that local day.
type CreateRateRequest struct {
	ActivityID    string  `json:"activity_id"`
	HourlyVND     int64   `json:"hourly_vnd"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

func (r *CreateRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ActivityID) {
		errs = append(errs, validator.ValidationError{Field: "activity_id", Message: "activity_id is required"})
	}
	if r.HourlyVND < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_vnd", Message: "must be non-negative"})
	}
	errs = append(errs, validateBounds(r.EffectiveFrom, r.EffectiveTo)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Bounds converts the request window to instants in loc.
func (r *CreateRateRequest) Bounds(loc *time.Location) (time.Time, *time.Time) {
	return parseBounds(r.EffectiveFrom, r.EffectiveTo, loc)
}

// UpdateRateRequest replaces the amount and window of an existing rate.
type UpdateRateRequest struct {
	ID            string  `json:"-"`
	HourlyVND     int64   `json:"hourly_vnd"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

func (r *UpdateRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.HourlyVND < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_vnd", Message: "must be non-negative"})
	}
	errs = append(errs, validateBounds(r.EffectiveFrom, r.EffectiveTo)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateRateRequest) Bounds(loc *time.Location) (time.Time, *time.Time) {
	return parseBounds(r.EffectiveFrom, r.EffectiveTo, loc)
}

func validateBounds(from string, to *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(from) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from is required"})
	} else if !isDateOrDateTime(from) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be YYYY-MM-DD or RFC3339"})
	}
	if to != nil && !isDateOrDateTime(*to) {
		errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be YYYY-MM-DD or RFC3339"})
	}
	if len(errs) > 0 {
		return errs
	}

	// Rechecked in the configured zone by the service.
	f, t := parseBounds(from, to, time.UTC)
	if t != nil && !t.After(f) {
		errs = append(errs, validator.ValidationError{Field: "effective_to", Message: ErrInvalidRateWindow.Error()})
	}
	return errs
}

func isDateOrDateTime(s string) bool {
	if _, ok := validator.IsValidDate(s); ok {
		return true
	}
	_, ok := validator.IsValidDateTime(s)
	return ok
}

func parseBounds(from string, to *string, loc *time.Location) (time.Time, *time.Time) {
	start := parseInstant(from, loc, false)
	if to == nil {
		return start, nil
	}
	end := parseInstant(*to, loc, true)
	return start, &end
}

// parseInstant assumes the value already passed validation.
func parseInstant(s string, loc *time.Location, endOfDay bool) time.Time {
	if t, ok := validator.IsValidDateTime(s); ok {
		return t.UTC()
	}
	d, _ := time.ParseInLocation("2006-01-02", s, loc)
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return d.UTC()
}
