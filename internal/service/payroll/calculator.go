package payroll

import (
	"sort"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var msPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// Calculator turns shift records and rates into payroll views.
// It holds no state besides the local zone used for calendar dates.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	return &Calculator{loc: loc}
}

// ShiftHours is the shift duration in hours: milliseconds / 3,600,000.
func ShiftHours(s shift.Shift) decimal.Decimal {
	return decimal.NewFromInt(s.Duration().Milliseconds()).Div(msPerHour)
}

type pricedShift struct {
	shift.Record
	hours    decimal.Decimal
	hourly   int64
	subtotal decimal.Decimal
}

func price(records []shift.Record, resolver *RateResolver) []pricedShift {
	priced := make([]pricedShift, 0, len(records))
	for _, rec := range records {
		hours := ShiftHours(rec.Shift)
		hourly := resolver.HourlyAt(rec.ActivityID, rec.StartAt)
		priced = append(priced, pricedShift{
			Record:   rec,
			hours:    hours,
			hourly:   hourly,
			subtotal: hours.Mul(decimal.NewFromInt(hourly)),
		})
	}
	return priced
}

// Summaries groups shifts by employee and then by activity, sorted by employee name.
func (c *Calculator) Summaries(records []shift.Record, rates []rate.Rate) []payroll.EmployeeSummary {
	resolver := NewRateResolver(rates)

	type activityAcc struct {
		breakdown payroll.ActivityBreakdown
		rates     map[int64]*payroll.AppliedRate
	}
	type employeeAcc struct {
		summary    payroll.EmployeeSummary
		activities map[string]*activityAcc
	}

	employees := make(map[string]*employeeAcc)
	for _, p := range price(records, resolver) {
		emp, ok := employees[p.EmployeeID]
		if !ok {
			emp = &employeeAcc{
				summary: payroll.EmployeeSummary{
					EmployeeID:   p.EmployeeID,
					EmployeeName: p.EmployeeName,
					TotalHours:   decimal.Zero,
					TotalSalary:  decimal.Zero,
				},
				activities: make(map[string]*activityAcc),
			}
			employees[p.EmployeeID] = emp
		}
		emp.summary.TotalHours = emp.summary.TotalHours.Add(p.hours)
		emp.summary.TotalSalary = emp.summary.TotalSalary.Add(p.subtotal)
		emp.summary.ShiftCount++

		act, ok := emp.activities[p.ActivityID]
		if !ok {
			act = &activityAcc{
				breakdown: payroll.ActivityBreakdown{
					ActivityID:   p.ActivityID,
					ActivityName: p.ActivityName,
					Hours:        decimal.Zero,
					Subtotal:     decimal.Zero,
				},
				rates: make(map[int64]*payroll.AppliedRate),
			}
			emp.activities[p.ActivityID] = act
		}
		act.breakdown.Hours = act.breakdown.Hours.Add(p.hours)
		act.breakdown.Subtotal = act.breakdown.Subtotal.Add(p.subtotal)
		act.breakdown.ShiftCount++

		applied, ok := act.rates[p.hourly]
		if !ok {
			applied = &payroll.AppliedRate{HourlyVND: p.hourly, Hours: decimal.Zero, Subtotal: decimal.Zero}
			act.rates[p.hourly] = applied
		}
		applied.Hours = applied.Hours.Add(p.hours)
		applied.Subtotal = applied.Subtotal.Add(p.subtotal)
		applied.ShiftCount++
	}

	// collate.Collator is not safe for concurrent use.
	col := collate.New(language.Vietnamese)

	summaries := make([]payroll.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		breakdowns := make([]payroll.ActivityBreakdown, 0, len(emp.activities))
		for _, act := range emp.activities {
			b := act.breakdown
			b.AverageRate = averageRate(b.Subtotal, b.Hours)
			b.Rates = make([]payroll.AppliedRate, 0, len(act.rates))
			for _, applied := range act.rates {
				b.Rates = append(b.Rates, *applied)
			}
			sort.Slice(b.Rates, func(i, j int) bool { return b.Rates[i].HourlyVND < b.Rates[j].HourlyVND })
			breakdowns = append(breakdowns, b)
		}
		sort.Slice(breakdowns, func(i, j int) bool {
			if c := col.CompareString(breakdowns[i].ActivityName, breakdowns[j].ActivityName); c != 0 {
				return c < 0
			}
			return breakdowns[i].ActivityID < breakdowns[j].ActivityID
		})

		s := emp.summary
		s.Activities = breakdowns
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if c := col.CompareString(summaries[i].EmployeeName, summaries[j].EmployeeName); c != 0 {
			return c < 0
		}
		return summaries[i].EmployeeID < summaries[j].EmployeeID
	})
	return summaries
}

// Daily emits one entry per shift, ordered by start, with hours rounded to
// 2 places and the subtotal to whole VND.
func (c *Calculator) Daily(records []shift.Record, rates []rate.Rate) []payroll.DailyEntry {
	resolver := NewRateResolver(rates)

	entries := make([]payroll.DailyEntry, 0, len(records))
	for _, p := range price(records, resolver) {
		entries = append(entries, payroll.DailyEntry{
			ShiftID:      p.ID,
			Date:         localtime.LocalDate(p.StartAt, c.loc),
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			ActivityID:   p.ActivityID,
			ActivityName: p.ActivityName,
			StartAt:      p.StartAt,
			EndAt:        p.EndAt,
			Hours:        p.hours.Round(2),
			HourlyVND:    p.hourly,
			Subtotal:     p.subtotal.Round(0),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].StartAt.Equal(entries[j].StartAt) {
			return entries[i].StartAt.Before(entries[j].StartAt)
		}
		return entries[i].ShiftID < entries[j].ShiftID
	})
	return entries
}

func averageRate(subtotal, hours decimal.Decimal) decimal.Decimal {
	if hours.IsZero() {
		return decimal.Zero
	}
	return subtotal.Div(hours).Round(2)
}
