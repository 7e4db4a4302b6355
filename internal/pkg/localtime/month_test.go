package localtime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	cases := []struct {
		input string
		want  YearMonth
	}{
		{"2025-09", YearMonth{2025, time.September}},
		{"09-2025", YearMonth{2025, time.September}},
		{"2025-9", YearMonth{2025, time.September}},
		{"9-2025", YearMonth{2025, time.September}},
		{"0001-01", YearMonth{1, time.January}},
		{"9999-12", YearMonth{9999, time.December}},
		{" 2024-02 ", YearMonth{2024, time.February}},
	}
	for _, c := range cases {
		got, err := ParseYearMonth(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got, c.input)
	}
}

func TestParseYearMonth_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"2025",
		"2025-13",
		"2025-00",
		"13-2025",
		"0000-01",
		"25-09",
		"2025-09-01",
		"2025/09",
		"20a5-09",
		"2025-0x",
		"2025-2025",
		"2025-+9",
		"-2025",
		"2025-",
		"02025-09",
		"2025-009",
	}
	for _, s := range invalid {
		_, err := ParseYearMonth(s)
		assert.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrInvalidYearMonth), s)
	}
}

func TestYearMonth_String(t *testing.T) {
	assert.Equal(t, "2025-09", YearMonth{2025, time.September}.String())
	assert.Equal(t, "0042-12", YearMonth{42, time.December}.String())
	assert.Equal(t, "2025-09", MustParseYearMonth("09-2025").String())
}

func TestYearMonth_NextPrev(t *testing.T) {
	assert.Equal(t, YearMonth{2026, time.January}, YearMonth{2025, time.December}.Next())
	assert.Equal(t, YearMonth{2024, time.December}, YearMonth{2025, time.January}.Prev())
	assert.Equal(t, YearMonth{2025, time.October}, YearMonth{2025, time.September}.Next())
	assert.True(t, YearMonth{2025, time.August}.Before(YearMonth{2025, time.September}))
	assert.False(t, YearMonth{2026, time.January}.Before(YearMonth{2025, time.December}))
}

func TestMonthRange_UTCPlus7(t *testing.T) {
	loc := Zone(DefaultOffsetMinutes)

	for _, input := range []string{"2025-09", "09-2025"} {
		r := MonthRange(MustParseYearMonth(input), loc)
		assert.Equal(t, "2025-08-31T17:00:00.000Z", r.Start.Format("2006-01-02T15:04:05.000Z07:00"))
		assert.Equal(t, "2025-09-30T16:59:59.999Z", r.End.Format("2006-01-02T15:04:05.000Z07:00"))
		assert.Equal(t, time.Date(2025, 9, 30, 17, 0, 0, 0, time.UTC), r.Until())
	}
}

func TestMonthRange_OtherOffsets(t *testing.T) {
	r := MonthRange(MustParseYearMonth("2024-02"), time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), r.End)

	r = MonthRange(MustParseYearMonth("2025-01"), Zone(-300))
	assert.Equal(t, time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, 2, 1, 5, 0, 0, 0, time.UTC), r.Until())
}

func TestRange_Contains(t *testing.T) {
	r := MonthRange(MustParseYearMonth("2025-09"), Zone(DefaultOffsetMinutes))
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.True(t, r.Contains(r.End.Add(500*time.Microsecond)))
	assert.False(t, r.Contains(r.Until()))
	assert.False(t, r.Contains(r.Start.Add(-time.Nanosecond)))
}

func TestYearMonthOf(t *testing.T) {
	loc := Zone(DefaultOffsetMinutes)

	// 2025-08-31T17:00Z is local midnight of September 1st.
	assert.Equal(t, YearMonth{2025, time.September}, YearMonthOf(time.Date(2025, 8, 31, 17, 0, 0, 0, time.UTC), loc))
	assert.Equal(t, YearMonth{2025, time.August}, YearMonthOf(time.Date(2025, 8, 31, 16, 59, 59, 0, time.UTC), loc))
	assert.Equal(t, YearMonth{2025, time.August}, YearMonthOf(time.Date(2025, 8, 31, 16, 59, 59, 0, time.UTC), time.UTC))
}

func TestLocalDate(t *testing.T) {
	loc := Zone(DefaultOffsetMinutes)
	assert.Equal(t, "2025-09-01", LocalDate(time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC), loc))
	assert.Equal(t, "2025-08-31", LocalDate(time.Date(2025, 8, 31, 16, 0, 0, 0, time.UTC), loc))
	assert.Equal(t, time.Date(2025, 8, 31, 17, 0, 0, 0, time.UTC), StartOfDay(time.Date(2025, 9, 1, 3, 0, 0, 0, time.UTC), loc))
}

func TestZone(t *testing.T) {
	loc := Zone(420)
	assert.Equal(t, "UTC+07:00", loc.String())
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, offset)

	assert.Equal(t, "UTC-05:30", Zone(-330).String())
}
