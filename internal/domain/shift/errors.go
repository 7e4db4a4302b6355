package shift

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityInactive    = errors.New("activity is inactive")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrInvalidInterval     = errors.New("end_at must be after start_at")
	ErrShiftOverlap        = errors.New("shift overlaps an existing shift")
	ErrTooManyShiftsPerDay = errors.New("employee already has the maximum number of shifts on this day")
	ErrForbidden           = errors.New("not allowed to access this shift")
)

// ConflictError describes which scheduling rule a shift breaks.
type ConflictError struct {
	Reason  error
	ShiftID string
	Detail  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason.Error(), e.Detail)
}

func (e *ConflictError) Unwrap() error {
	return e.Reason
}
