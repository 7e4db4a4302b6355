package rate

import "errors"

var (
	ErrRateNotFound       = errors.New("rate not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrInvalidRateWindow  = errors.New("effective_to must be after effective_from")
	ErrNegativeHourlyRate = errors.New("hourly rate must be non-negative")
)
