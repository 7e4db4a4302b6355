package payroll

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Source tells whether a payroll view was computed now or read from the close-time snapshot.
type Source string

const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
)

// ========== QUERY DTOs ==========

type PayrollQuery struct {
	Month      string
	EmployeeID *string
	Live       bool
}

func (q *PayrollQuery) Validate() error {
	var errs validator.ValidationErrors

	if !q.NoMonth() {
		if _, ok := validator.IsValidYearMonth(q.Month); !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be YYYY-MM"})
		}
	}
	if q.EmployeeID != nil && validator.IsEmpty(*q.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NoMonth reports a query without a month. Such queries select nothing.
func (q *PayrollQuery) NoMonth() bool {
	return validator.IsEmpty(q.Month)
}

// YearMonth returns the parsed month; call after Validate.
func (q *PayrollQuery) YearMonth() localtime.YearMonth {
	ym, _ := localtime.ParseYearMonth(q.Month)
	return ym
}

// ========== SUMMARY DTOs ==========

type EmployeePayrollResponse struct {
	EmployeeSummary
	Confirmation *ConfirmationResponse `json:"confirmation"`
}

type PayrollSummaryResponse struct {
	Month       string                    `json:"month"`
	Status      *PeriodStatus             `json:"period_status"`
	Source      Source                    `json:"source"`
	ComputedAt  time.Time                 `json:"computed_at"`
	TotalHours  decimal.Decimal           `json:"total_hours"`
	TotalSalary decimal.Decimal           `json:"total_salary"`
	Employees   []EmployeePayrollResponse `json:"employees"`
}

type DailyBreakdownResponse struct {
	Month      string        `json:"month"`
	Status     *PeriodStatus `json:"period_status"`
	Source     Source        `json:"source"`
	ComputedAt time.Time     `json:"computed_at"`
	Entries    []DailyEntry  `json:"entries"`
}

// ========== PERIOD DTOs ==========

type PeriodResponse struct {
	ID        string     `json:"id"`
	Month     string     `json:"month"`
	Status    string     `json:"status"`
	ClosedBy  *string    `json:"closed_by"`
	ClosedAt  *time.Time `json:"closed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		ID:        p.ID,
		Month:     p.YearMonth.String(),
		Status:    string(p.Status),
		ClosedBy:  p.ClosedBy,
		ClosedAt:  p.ClosedAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type CreatePeriodRequest struct {
	Month string `json:"month"`
}

func (r *CreatePeriodRequest) Validate() error {
	if validator.IsEmpty(r.Month) {
		return validator.ValidationErrors{{Field: "month", Message: "month is required"}}
	}
	if _, ok := validator.IsValidYearMonth(r.Month); !ok {
		return validator.ValidationErrors{{Field: "month", Message: "month must be YYYY-MM"}}
	}
	return nil
}

// ========== CONFIRMATION DTOs ==========

type ConfirmationResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ConfirmedAt time.Time  `json:"confirmed_at"`
	ConfirmedBy string     `json:"confirmed_by"`
	PaidAt      *time.Time `json:"paid_at"`
	PaidBy      *string    `json:"paid_by"`
}

func NewConfirmationResponse(c Confirmation) ConfirmationResponse {
	return ConfirmationResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		ConfirmedAt: c.ConfirmedAt,
		ConfirmedBy: c.ConfirmedBy,
		PaidAt:      c.PaidAt,
		PaidBy:      c.PaidBy,
	}
}

// ConfirmRequest confirms the caller's own payroll, or UserID's when sent by an admin.
type ConfirmRequest struct {
	Month  string  `json:"-"`
	UserID *string `json:"user_id,omitempty"`
}

func (r *ConfirmRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidYearMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be YYYY-MM"})
	}
	if r.UserID != nil && validator.IsEmpty(*r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ConfirmationKey addresses a confirmation by period month and user.
type ConfirmationKey struct {
	Month  string
	UserID string
}

func (k *ConfirmationKey) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidYearMonth(k.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be YYYY-MM"})
	}
	if validator.IsEmpty(k.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== EXPORT DTOs ==========

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
