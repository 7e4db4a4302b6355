package shift

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

type Template string

const (
	TemplateMorning   Template = "morning"
	TemplateAfternoon Template = "afternoon"
	TemplateCustom    Template = "custom"
)

// MaxShiftsPerDay is the number of shifts one employee may hold on a local calendar day.
const MaxShiftsPerDay = 2

func (t Template) IsValid() bool {
	return t == TemplateMorning || t == TemplateAfternoon || t == TemplateCustom
}

// Preset returns the local start and end of a named template; custom has none.
func (t Template) Preset() (start, end time.Duration, ok bool) {
	switch t {
	case TemplateMorning:
		return 6 * time.Hour, 12 * time.Hour, true
	case TemplateAfternoon:
		return 12 * time.Hour, 18 * time.Hour, true
	}
	return 0, 0, false
}

// Shift is a scheduled work interval of one employee on one activity.
type Shift struct {
	ID         string
	EmployeeID string
	ActivityID string
	StartAt    time.Time
	EndAt      time.Time
	Template   Template
	IsManual   bool
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s Shift) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// Overlaps reports whether the two intervals share any instant. Touching ends do not overlap.
func (s Shift) Overlaps(other Shift) bool {
	return s.StartAt.Before(other.EndAt) && other.StartAt.Before(s.EndAt)
}

// Month is the local payroll month the shift belongs to, derived from its start.
func (s Shift) Month(loc *time.Location) localtime.YearMonth {
	return localtime.YearMonthOf(s.StartAt, loc)
}

// IsManualFor reports whether start/end deviate from the template preset in loc.
func IsManualFor(t Template, startAt, endAt time.Time, loc *time.Location) bool {
	ps, pe, ok := t.Preset()
	if !ok {
		return true
	}
	day := localtime.StartOfDay(startAt, loc)
	return !startAt.Equal(day.Add(ps)) || !endAt.Equal(day.Add(pe))
}

// Record is a shift with the display names it is reported under.
// Storage returns these already flattened so payroll code never sees nested relations.
type Record struct {
	Shift
	EmployeeName string
	ActivityName string
}
