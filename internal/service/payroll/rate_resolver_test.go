package payroll

import (
	"testing"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/stretchr/testify/assert"
)

var ict = localtime.Zone(localtime.DefaultOffsetMinutes)

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, ict)
}

func endOfLocalDay(y int, m time.Month, d int) *time.Time {
	t := localDay(y, m, d).AddDate(0, 0, 1).Add(-time.Millisecond)
	return &t
}

func TestRateResolver_NoRates(t *testing.T) {
	r := NewRateResolver(nil)
	_, ok := r.Resolve("barista", time.Now())
	assert.False(t, ok)
	assert.Equal(t, int64(0), r.HourlyAt("barista", time.Now()))
}

func TestRateResolver_Window(t *testing.T) {
	rates := []rate.Rate{
		{ID: "r1", ActivityID: "barista", HourlyVND: 20000, EffectiveFrom: localDay(2025, 1, 1), EffectiveTo: endOfLocalDay(2025, 8, 31)},
		{ID: "r2", ActivityID: "barista", HourlyVND: 22000, EffectiveFrom: localDay(2025, 9, 1)},
		{ID: "r3", ActivityID: "cashier", HourlyVND: 30000, EffectiveFrom: localDay(2025, 1, 1)},
	}
	r := NewRateResolver(rates)

	cases := []struct {
		name     string
		activity string
		at       time.Time
		want     int64
	}{
		{"before any rate", "barista", localDay(2024, 12, 31), 0},
		{"first window", "barista", localDay(2025, 6, 15).Add(8 * time.Hour), 20000},
		{"last instant of first window", "barista", *endOfLocalDay(2025, 8, 31), 20000},
		{"local midnight of the new rate", "barista", localDay(2025, 9, 1), 22000},
		{"open ended", "barista", localDay(2030, 1, 1), 22000},
		{"other activity", "cashier", localDay(2025, 9, 1), 30000},
		{"unknown activity", "roaster", localDay(2025, 9, 1), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, r.HourlyAt(c.activity, c.at))
		})
	}
}

func TestRateResolver_OverlapsPickLatestStart(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rates := []rate.Rate{
		{ID: "old", ActivityID: "a", HourlyVND: 10000, EffectiveFrom: localDay(2025, 1, 1), CreatedAt: created.Add(time.Hour)},
		{ID: "new", ActivityID: "a", HourlyVND: 12000, EffectiveFrom: localDay(2025, 3, 1), CreatedAt: created},
	}
	r := NewRateResolver(rates)

	assert.Equal(t, int64(10000), r.HourlyAt("a", localDay(2025, 2, 1)))
	assert.Equal(t, int64(12000), r.HourlyAt("a", localDay(2025, 4, 1)))
}

func TestRateResolver_TieBreak(t *testing.T) {
	from := localDay(2025, 1, 1)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("later created_at wins", func(t *testing.T) {
		r := NewRateResolver([]rate.Rate{
			{ID: "b", ActivityID: "a", HourlyVND: 2, EffectiveFrom: from, CreatedAt: created.Add(time.Minute)},
			{ID: "c", ActivityID: "a", HourlyVND: 3, EffectiveFrom: from, CreatedAt: created},
		})
		assert.Equal(t, int64(2), r.HourlyAt("a", from))
	})

	t.Run("greater id wins on equal created_at", func(t *testing.T) {
		for _, order := range [][]string{{"x", "y"}, {"y", "x"}} {
			var rates []rate.Rate
			for _, id := range order {
				hourly := int64(1)
				if id == "y" {
					hourly = 2
				}
				rates = append(rates, rate.Rate{ID: id, ActivityID: "a", HourlyVND: hourly, EffectiveFrom: from, CreatedAt: created})
			}
			assert.Equal(t, int64(2), NewRateResolver(rates).HourlyAt("a", from))
		}
	})
}

// Resolve must return the covering rate with maximum effective_from, whatever the input order.
func TestRateResolver_MaxEffectiveFromProperty(t *testing.T) {
	base := localDay(2025, 1, 1)
	var rates []rate.Rate
	for i := 0; i < 12; i++ {
		r := rate.Rate{
			ID:            string(rune('a' + i)),
			ActivityID:    "act",
			HourlyVND:     int64(1000 * (i + 1)),
			EffectiveFrom: base.AddDate(0, (i*7)%12, 0),
		}
		if i%3 == 0 {
			to := r.EffectiveFrom.AddDate(0, 0, 20)
			r.EffectiveTo = &to
		}
		rates = append(rates, r)
	}
	resolver := NewRateResolver(rates)

	for day := 0; day < 400; day += 5 {
		at := base.AddDate(0, 0, day)

		var want int64
		var best *rate.Rate
		for i := range rates {
			if !rates[i].Covers(at) {
				continue
			}
			if best == nil || rates[i].EffectiveFrom.After(best.EffectiveFrom) {
				best = &rates[i]
			}
		}
		if best != nil {
			want = best.HourlyVND
		}
		assert.Equal(t, want, resolver.HourlyAt("act", at), at.String())
	}
}
