package localtime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultOffsetMinutes is UTC+7, the shop's local time.
const DefaultOffsetMinutes = 420

var ErrInvalidYearMonth = errors.New("invalid year-month, expected YYYY-MM")

// Zone returns a fixed zone for the given offset east of UTC.
func Zone(offsetMinutes int) *time.Location {
	sign := "+"
	m := offsetMinutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, m/60, m%60)
	return time.FixedZone(name, offsetMinutes*60)
}

// YearMonth is a calendar month in the local calendar.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth accepts "YYYY-MM" and "MM-YYYY".
func ParseYearMonth(s string) (YearMonth, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}

	var yearPart, monthPart string
	switch {
	case len(parts[0]) == 4 && len(parts[1]) <= 2:
		yearPart, monthPart = parts[0], parts[1]
	case len(parts[1]) == 4 && len(parts[0]) <= 2:
		yearPart, monthPart = parts[1], parts[0]
	default:
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}

	if !isDigits(yearPart) || !isDigits(monthPart) {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}

	year, _ := strconv.Atoi(yearPart)
	month, _ := strconv.Atoi(monthPart)
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}

	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// MustParseYearMonth panics on malformed input. Intended for tests and constants.
func MustParseYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String returns the canonical zero-padded form, e.g. "2025-09".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Key packs the month into a single comparable integer (yyyymm).
func (ym YearMonth) Key() int {
	return ym.Year*100 + int(ym.Month)
}

func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Key() < other.Key()
}

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Range is an absolute instant range. End is the last millisecond of the range, inclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// Until is the exclusive upper bound, one millisecond after End.
func (r Range) Until() time.Time {
	return r.End.Add(time.Millisecond)
}

// Contains reports whether t falls in [Start, Until).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.Until())
}

// MonthRange returns the UTC instants bounding ym in the given local zone.
func MonthRange(ym YearMonth, loc *time.Location) Range {
	start := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
	next := start.AddDate(0, 1, 0)
	return Range{
		Start: start.UTC(),
		End:   next.Add(-time.Millisecond).UTC(),
	}
}

// YearMonthOf returns the local calendar month containing t.
func YearMonthOf(t time.Time, loc *time.Location) YearMonth {
	lt := t.In(loc)
	return YearMonth{Year: lt.Year(), Month: lt.Month()}
}

// LocalDate formats t as YYYY-MM-DD in the local calendar.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// StartOfDay returns local midnight of the day containing t, as a UTC instant.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc).UTC()
}
