package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeSummary is one employee's payroll for a month.
type EmployeeSummary struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	TotalHours   decimal.Decimal     `json:"total_hours"`
	TotalSalary  decimal.Decimal     `json:"total_salary"`
	ShiftCount   int                 `json:"shift_count"`
	Activities   []ActivityBreakdown `json:"activities"`
}

// ActivityBreakdown is an employee's hours and pay for one activity.
// AverageRate is weighted by hours; Rates lists every hourly rate applied.
type ActivityBreakdown struct {
	ActivityID   string          `json:"activity_id"`
	ActivityName string          `json:"activity_name"`
	Hours        decimal.Decimal `json:"hours"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	AverageRate  decimal.Decimal `json:"average_rate"`
	ShiftCount   int             `json:"shift_count"`
	Rates        []AppliedRate   `json:"rates"`
}

// AppliedRate groups the shifts of a breakdown paid at the same hourly rate.
type AppliedRate struct {
	HourlyVND  int64           `json:"hourly_vnd"`
	Hours      decimal.Decimal `json:"hours"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	ShiftCount int             `json:"shift_count"`
}

// DailyEntry is one shift with its rounded hours and pay.
type DailyEntry struct {
	ShiftID      string          `json:"shift_id"`
	Date         string          `json:"date"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	ActivityID   string          `json:"activity_id"`
	ActivityName string          `json:"activity_name"`
	StartAt      time.Time       `json:"start_at"`
	EndAt        time.Time       `json:"end_at"`
	Hours        decimal.Decimal `json:"hours"`
	HourlyVND    int64           `json:"hourly_vnd"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}
