package payroll

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusClosed PeriodStatus = "closed"
)

// Period - one payroll month and its lock state
type Period struct {
	ID        string
	YearMonth localtime.YearMonth
	Status    PeriodStatus
	ClosedBy  *string
	ClosedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPeriod(ym localtime.YearMonth) Period {
	return Period{YearMonth: ym, Status: PeriodStatusOpen}
}

func (p *Period) IsClosed() bool {
	return p.Status == PeriodStatusClosed
}

// Close moves open -> closed and records who closed it.
func (p *Period) Close(by string, at time.Time) error {
	if p.IsClosed() {
		return ErrPeriodAlreadyClosed
	}
	p.Status = PeriodStatusClosed
	p.ClosedBy = &by
	p.ClosedAt = &at
	return nil
}

// Reopen moves closed -> open and clears the closing audit fields.
func (p *Period) Reopen() error {
	if !p.IsClosed() {
		return ErrPeriodAlreadyOpen
	}
	p.Status = PeriodStatusOpen
	p.ClosedBy = nil
	p.ClosedAt = nil
	return nil
}

// Confirmation - an employee's attestation of a period's payroll, later marked paid
type Confirmation struct {
	ID          string
	PeriodID    string
	UserID      string
	ConfirmedAt time.Time
	ConfirmedBy string
	PaidAt      *time.Time
	PaidBy      *string
}

func (c *Confirmation) IsPaid() bool {
	return c.PaidAt != nil
}

func (c *Confirmation) MarkPaid(by string, at time.Time) {
	c.PaidAt = &at
	c.PaidBy = &by
}

func (c *Confirmation) UnmarkPaid() {
	c.PaidAt = nil
	c.PaidBy = nil
}

// Snapshot - payroll frozen when its period was closed
type Snapshot struct {
	PeriodID   string
	YearMonth  localtime.YearMonth
	Summaries  []EmployeeSummary
	Daily      []DailyEntry
	ComputedAt time.Time
}

// ForEmployee narrows the snapshot to one employee.
func (s Snapshot) ForEmployee(employeeID string) Snapshot {
	out := Snapshot{PeriodID: s.PeriodID, YearMonth: s.YearMonth, ComputedAt: s.ComputedAt}
	for _, sum := range s.Summaries {
		if sum.EmployeeID == employeeID {
			out.Summaries = append(out.Summaries, sum)
		}
	}
	for _, d := range s.Daily {
		if d.EmployeeID == employeeID {
			out.Daily = append(out.Daily, d)
		}
	}
	return out
}
