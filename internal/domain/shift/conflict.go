package shift

import (
	"fmt"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

// ValidateConflicts checks candidate against the employee's other shifts.
// existing may include the candidate itself (same ID) when updating; it is skipped.
func ValidateConflicts(candidate Shift, existing []Shift, loc *time.Location) error {
	day := localtime.LocalDate(candidate.StartAt, loc)
	sameDay := 0

	for _, other := range existing {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.EmployeeID != candidate.EmployeeID {
			continue
		}
		if candidate.Overlaps(other) {
			return &ConflictError{
				Reason:  ErrShiftOverlap,
				ShiftID: other.ID,
				Detail: fmt.Sprintf("overlaps shift %s (%s - %s)", other.ID,
					other.StartAt.In(loc).Format("2006-01-02 15:04"), other.EndAt.In(loc).Format("15:04")),
			}
		}
		if localtime.LocalDate(other.StartAt, loc) == day {
			sameDay++
		}
	}

	if sameDay >= MaxShiftsPerDay {
		return &ConflictError{
			Reason: ErrTooManyShiftsPerDay,
			Detail: fmt.Sprintf("employee already has %d shifts on %s", sameDay, day),
		}
	}
	return nil
}

// ValidateBatch checks a set of new shifts against each other and the stored ones.
func ValidateBatch(candidates []Shift, existing []Shift, loc *time.Location) error {
	seen := make([]Shift, 0, len(existing)+len(candidates))
	seen = append(seen, existing...)
	for _, c := range candidates {
		if err := ValidateConflicts(c, seen, loc); err != nil {
			return err
		}
		seen = append(seen, c)
	}
	return nil
}
