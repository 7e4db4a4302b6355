package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/notification"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/export"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Dependencies groups the collaborators of the payroll service.
type Dependencies struct {
	Gate          payroll.PeriodGate
	Periods       payroll.PeriodRepository
	Confirmations payroll.ConfirmationRepository
	Snapshots     payroll.SnapshotRepository
	Shifts        shift.ShiftRepository
	Rates         rate.RateRepository
	Profiles      user.ProfileRepository
	Cache         payroll.SummaryCache
	Reminders     payroll.ReminderLedger
	Notifier      notification.Notifier
	Location      *time.Location
	Now           func() time.Time
}

type PayrollServiceImpl struct {
	Dependencies
	calc *Calculator
}

func NewPayrollService(deps Dependencies) payroll.PayrollService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &PayrollServiceImpl{
		Dependencies: deps,
		calc:         NewCalculator(deps.Location),
	}
}

// ========== COMPUTATION ==========

// view is a computed or frozen payroll for one month.
type view struct {
	ym         localtime.YearMonth
	period     *payroll.Period
	source     payroll.Source
	computedAt time.Time
	summaries  []payroll.EmployeeSummary
	daily      []payroll.DailyEntry
}

func (v view) month() string {
	if v.ym.IsZero() {
		return ""
	}
	return v.ym.String()
}

func (v view) status() *payroll.PeriodStatus {
	if v.period == nil {
		return nil
	}
	st := v.period.Status
	return &st
}

// employeeScope applies payroll.view_all: others only read their own payroll.
func employeeScope(ctx context.Context, requested *string) (*string, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Can(user.PermissionPayrollViewAll) {
		return requested, nil
	}
	if requested != nil && *requested != actor.UserID {
		return nil, payroll.ErrForbidden
	}
	self := actor.UserID
	return &self, nil
}

func (s *PayrollServiceImpl) findPeriod(ctx context.Context, ym localtime.YearMonth) (*payroll.Period, error) {
	p, err := s.Periods.GetByMonth(ctx, ym)
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// load returns the month's payroll: the close-time snapshot when the period is
// closed and live is false, a fresh computation otherwise.
func (s *PayrollServiceImpl) load(ctx context.Context, query payroll.PayrollQuery, withDaily bool) (view, error) {
	if err := query.Validate(); err != nil {
		return view{}, err
	}
	employeeID, err := employeeScope(ctx, query.EmployeeID)
	if err != nil {
		return view{}, err
	}

	if query.NoMonth() {
		return view{source: payroll.SourceLive, computedAt: s.Now()}, nil
	}

	v := view{ym: query.YearMonth()}
	if v.period, err = s.findPeriod(ctx, v.ym); err != nil {
		return view{}, err
	}

	if v.period != nil && v.period.IsClosed() && !query.Live {
		snap, err := s.Snapshots.Get(ctx, v.period.ID)
		switch {
		case err == nil:
			if employeeID != nil {
				snap = snap.ForEmployee(*employeeID)
			}
			v.source = payroll.SourceSnapshot
			v.computedAt = snap.ComputedAt
			v.summaries = snap.Summaries
			v.daily = snap.Daily
			return v, nil
		case errors.Is(err, payroll.ErrSnapshotNotFound):
			slog.Warn("closed payroll period has no snapshot, computing live", "month", v.ym.String())
		default:
			return view{}, err
		}
	}

	v.source = payroll.SourceLive
	v.computedAt = s.Now()
	if v.summaries, v.daily, err = s.compute(ctx, v.ym, employeeID, withDaily); err != nil {
		return view{}, err
	}
	return v, nil
}

// compute runs the calculator over current shifts and rates, using the cache when possible.
func (s *PayrollServiceImpl) compute(ctx context.Context, ym localtime.YearMonth, employeeID *string, withDaily bool) ([]payroll.EmployeeSummary, []payroll.DailyEntry, error) {
	gen, cached := s.Cache.Generation(ctx)
	if cached {
		summaries, haveSummaries := s.Cache.GetSummaries(ctx, gen, ym, employeeID)
		var daily []payroll.DailyEntry
		haveDaily := !withDaily
		if withDaily {
			daily, haveDaily = s.Cache.GetDaily(ctx, gen, ym, employeeID)
		}
		if haveSummaries && haveDaily {
			return summaries, daily, nil
		}
	}

	month := localtime.MonthRange(ym, s.Location)
	records, err := s.Shifts.ListRecords(ctx, shift.Filter{
		StartFrom:  month.Start,
		StartUntil: month.Until(),
		EmployeeID: employeeID,
	})
	if err != nil {
		return nil, nil, err
	}
	rates, err := s.Rates.List(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	summaries := s.calc.Summaries(records, rates)
	var daily []payroll.DailyEntry
	if withDaily {
		daily = s.calc.Daily(records, rates)
	}
	if cached {
		s.Cache.SetSummaries(ctx, gen, ym, employeeID, summaries)
		if withDaily {
			s.Cache.SetDaily(ctx, gen, ym, employeeID, daily)
		}
	}
	return summaries, daily, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, query payroll.PayrollQuery) (payroll.PayrollSummaryResponse, error) {
	v, err := s.load(ctx, query, false)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	return s.summaryResponse(ctx, v)
}

func (s *PayrollServiceImpl) summaryResponse(ctx context.Context, v view) (payroll.PayrollSummaryResponse, error) {
	confirmations := map[string]payroll.Confirmation{}
	if v.period != nil {
		list, err := s.Confirmations.ListByPeriod(ctx, v.period.ID)
		if err != nil {
			return payroll.PayrollSummaryResponse{}, err
		}
		for _, c := range list {
			confirmations[c.UserID] = c
		}
	}

	resp := payroll.PayrollSummaryResponse{
		Month:       v.month(),
		Status:      v.status(),
		Source:      v.source,
		ComputedAt:  v.computedAt,
		TotalHours:  decimal.Zero,
		TotalSalary: decimal.Zero,
		Employees:   make([]payroll.EmployeePayrollResponse, 0, len(v.summaries)),
	}
	for _, sum := range v.summaries {
		resp.TotalHours = resp.TotalHours.Add(sum.TotalHours)
		resp.TotalSalary = resp.TotalSalary.Add(sum.TotalSalary)

		emp := payroll.EmployeePayrollResponse{EmployeeSummary: sum}
		if c, ok := confirmations[sum.EmployeeID]; ok {
			cr := payroll.NewConfirmationResponse(c)
			emp.Confirmation = &cr
		}
		resp.Employees = append(resp.Employees, emp)
	}
	return resp, nil
}

func (s *PayrollServiceImpl) GetDailyBreakdown(ctx context.Context, query payroll.PayrollQuery) (payroll.DailyBreakdownResponse, error) {
	v, err := s.load(ctx, query, true)
	if err != nil {
		return payroll.DailyBreakdownResponse{}, err
	}
	entries := v.daily
	if entries == nil {
		entries = []payroll.DailyEntry{}
	}
	return payroll.DailyBreakdownResponse{
		Month:      v.month(),
		Status:     v.status(),
		Source:     v.source,
		ComputedAt: v.computedAt,
		Entries:    entries,
	}, nil
}

func (s *PayrollServiceImpl) ExportWorkbook(ctx context.Context, query payroll.PayrollQuery) (payroll.ExportFile, error) {
	if query.NoMonth() {
		return payroll.ExportFile{}, validator.ValidationErrors{{Field: "month", Message: "month is required"}}
	}
	v, err := s.load(ctx, query, true)
	if err != nil {
		return payroll.ExportFile{}, err
	}
	summary, err := s.summaryResponse(ctx, v)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	content, err := export.PayrollWorkbook(summary, v.daily, s.Location)
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to build payroll workbook: %w", err)
	}
	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payroll-%s.xlsx", v.ym),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

// ========== PERIODS ==========

func parseMonth(month string) (localtime.YearMonth, error) {
	ym, ok := validator.IsValidYearMonth(month)
	if !ok {
		return localtime.YearMonth{}, validator.ValidationErrors{{Field: "month", Message: "month must be YYYY-MM"}}
	}
	return ym, nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.Periods.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payroll.NewPeriodResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, month string) (payroll.PeriodResponse, error) {
	ym, err := parseMonth(month)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	p, err := s.Periods.GetByMonth(ctx, ym)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return payroll.NewPeriodResponse(p), nil
}

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}
	ym, _ := validator.IsValidYearMonth(req.Month)

	var created payroll.Period
	err := s.Gate.WithPeriodExclusive(ctx, ym, func(txCtx context.Context) error {
		var err error
		created, err = s.Periods.Create(txCtx, payroll.NewPeriod(ym))
		return err
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return payroll.NewPeriodResponse(created), nil
}

// ClosePeriod locks the month and freezes its payroll into a snapshot.
func (s *PayrollServiceImpl) ClosePeriod(ctx context.Context, month string) (payroll.PeriodResponse, error) {
	ym, err := parseMonth(month)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	var closed payroll.Period
	var employees []string
	err = s.Gate.WithPeriodExclusive(ctx, ym, func(txCtx context.Context) error {
		p, err := s.Periods.GetByMonth(txCtx, ym)
		if err != nil {
			return err
		}
		now := s.Now()
		if err := p.Close(actor.UserID, now); err != nil {
			return err
		}
		if closed, err = s.Periods.UpdateStatus(txCtx, p); err != nil {
			return err
		}

		monthRange := localtime.MonthRange(ym, s.Location)
		records, err := s.Shifts.ListRecords(txCtx, shift.Filter{StartFrom: monthRange.Start, StartUntil: monthRange.Until()})
		if err != nil {
			return err
		}
		rates, err := s.Rates.List(txCtx, nil)
		if err != nil {
			return err
		}
		snap := payroll.Snapshot{
			PeriodID:   closed.ID,
			YearMonth:  ym,
			Summaries:  s.calc.Summaries(records, rates),
			Daily:      s.calc.Daily(records, rates),
			ComputedAt: now,
		}
		if err := s.Snapshots.Save(txCtx, snap); err != nil {
			return err
		}
		for _, sum := range snap.Summaries {
			employees = append(employees, sum.EmployeeID)
		}
		return nil
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	slog.Info("payroll period closed", "month", ym.String(), "closed_by", actor.UserID, "employees", len(employees))
	s.invalidate(ctx)
	s.broadcast(ctx, employees, notification.TypePeriodClosed,
		fmt.Sprintf("Payroll for %s is ready", ym),
		fmt.Sprintf("The %s payroll period was closed. Please review and confirm your payroll.", ym),
		map[string]interface{}{"month": ym.String()})
	return payroll.NewPeriodResponse(closed), nil
}

// ReopenPeriod unlocks the month and drops its snapshot. Confirmations are kept.
func (s *PayrollServiceImpl) ReopenPeriod(ctx context.Context, month string) (payroll.PeriodResponse, error) {
	ym, err := parseMonth(month)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	var reopened payroll.Period
	var employees []string
	err = s.Gate.WithPeriodExclusive(ctx, ym, func(txCtx context.Context) error {
		p, err := s.Periods.GetByMonth(txCtx, ym)
		if err != nil {
			return err
		}
		if err := p.Reopen(); err != nil {
			return err
		}
		if reopened, err = s.Periods.UpdateStatus(txCtx, p); err != nil {
			return err
		}
		if snap, err := s.Snapshots.Get(txCtx, p.ID); err == nil {
			for _, sum := range snap.Summaries {
				employees = append(employees, sum.EmployeeID)
			}
		}
		return s.Snapshots.Delete(txCtx, p.ID)
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	slog.Info("payroll period reopened", "month", ym.String())
	s.invalidate(ctx)
	s.broadcast(ctx, employees, notification.TypePeriodReopened,
		fmt.Sprintf("Payroll for %s was reopened", ym),
		fmt.Sprintf("The %s payroll period is open again and may still change.", ym),
		map[string]interface{}{"month": ym.String()})
	return payroll.NewPeriodResponse(reopened), nil
}

func (s *PayrollServiceImpl) DeletePeriod(ctx context.Context, month string) error {
	ym, err := parseMonth(month)
	if err != nil {
		return err
	}

	err = s.Gate.WithPeriodExclusive(ctx, ym, func(txCtx context.Context) error {
		p, err := s.Periods.GetByMonth(txCtx, ym)
		if err != nil {
			return err
		}
		paid, err := s.Confirmations.CountPaid(txCtx, p.ID)
		if err != nil {
			return err
		}
		if paid > 0 {
			return payroll.ErrPeriodHasPaidConfirmations
		}
		return s.Periods.Delete(txCtx, p.ID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// ========== CONFIRMATIONS ==========

func (s *PayrollServiceImpl) ListConfirmations(ctx context.Context, month string) ([]payroll.ConfirmationResponse, error) {
	ym, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	scoped, err := employeeScope(ctx, nil)
	if err != nil {
		return nil, err
	}
	p, err := s.Periods.GetByMonth(ctx, ym)
	if err != nil {
		return nil, err
	}
	list, err := s.Confirmations.ListByPeriod(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.ConfirmationResponse, 0, len(list))
	for _, c := range list {
		if scoped != nil && c.UserID != *scoped {
			continue
		}
		responses = append(responses, payroll.NewConfirmationResponse(c))
	}
	return responses, nil
}

// withClosedPeriod runs fn under the period's exclusive lock after checking it is closed.
func (s *PayrollServiceImpl) withClosedPeriod(ctx context.Context, ym localtime.YearMonth, fn func(txCtx context.Context, p payroll.Period) error) error {
	return s.Gate.WithPeriodExclusive(ctx, ym, func(txCtx context.Context) error {
		p, err := s.Periods.GetByMonth(txCtx, ym)
		if err != nil {
			return err
		}
		if !p.IsClosed() {
			return payroll.ErrPeriodNotClosed
		}
		return fn(txCtx, p)
	})
}

func (s *PayrollServiceImpl) Confirm(ctx context.Context, req payroll.ConfirmRequest) (payroll.ConfirmationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ConfirmationResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.ConfirmationResponse{}, err
	}

	target := actor.UserID
	if req.UserID != nil && *req.UserID != actor.UserID {
		if !actor.IsAdmin() {
			return payroll.ConfirmationResponse{}, payroll.ErrForbidden
		}
		target = *req.UserID
	}
	if _, err := s.Profiles.GetByID(ctx, target); err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return payroll.ConfirmationResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.ConfirmationResponse{}, err
	}

	ym, _ := validator.IsValidYearMonth(req.Month)
	var saved payroll.Confirmation
	err = s.withClosedPeriod(ctx, ym, func(txCtx context.Context, p payroll.Period) error {
		var err error
		saved, err = s.Confirmations.Upsert(txCtx, payroll.Confirmation{
			PeriodID:    p.ID,
			UserID:      target,
			ConfirmedAt: s.Now(),
			ConfirmedBy: actor.UserID,
		})
		return err
	})
	if err != nil {
		return payroll.ConfirmationResponse{}, err
	}

	data := map[string]interface{}{"month": ym.String(), "user_id": target}
	if target == actor.UserID {
		admins, err := s.Profiles.List(ctx, user.ProfileFilter{Role: rolePtr(user.RoleAdmin), ActiveOnly: true})
		if err != nil {
			slog.Warn("failed to list admins for confirmation notice", "error", err)
		}
		var ids []string
		for _, a := range admins {
			if a.ID != actor.UserID {
				ids = append(ids, a.ID)
			}
		}
		s.broadcast(ctx, ids, notification.TypePayrollConfirmed,
			fmt.Sprintf("%s confirmed %s payroll", actor.FullName, ym),
			fmt.Sprintf("%s confirmed their payroll for %s.", actor.FullName, ym), data)
	} else {
		s.broadcast(ctx, []string{target}, notification.TypePayrollConfirmed,
			fmt.Sprintf("Your %s payroll was confirmed", ym),
			fmt.Sprintf("An administrator confirmed your payroll for %s.", ym), data)
	}
	return payroll.NewConfirmationResponse(saved), nil
}

func (s *PayrollServiceImpl) Unconfirm(ctx context.Context, key payroll.ConfirmationKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	ym, _ := validator.IsValidYearMonth(key.Month)

	err := s.Gate.WithPeriodExclusive(ctx, ym, func(txCtx context.Context) error {
		p, err := s.Periods.GetByMonth(txCtx, ym)
		if err != nil {
			return err
		}
		c, err := s.Confirmations.Get(txCtx, p.ID, key.UserID)
		if err != nil {
			return err
		}
		if c.IsPaid() {
			return payroll.ErrConfirmationAlreadyPaid
		}
		return s.Confirmations.Delete(txCtx, p.ID, key.UserID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, key payroll.ConfirmationKey) (payroll.ConfirmationResponse, error) {
	if err := key.Validate(); err != nil {
		return payroll.ConfirmationResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.ConfirmationResponse{}, err
	}
	ym, _ := validator.IsValidYearMonth(key.Month)

	var paid payroll.Confirmation
	err = s.withClosedPeriod(ctx, ym, func(txCtx context.Context, p payroll.Period) error {
		c, err := s.Confirmations.Get(txCtx, p.ID, key.UserID)
		if err != nil {
			if errors.Is(err, payroll.ErrConfirmationNotFound) {
				return payroll.ErrConfirmationRequired
			}
			return err
		}
		if c.IsPaid() {
			return payroll.ErrConfirmationAlreadyPaid
		}
		c.MarkPaid(actor.UserID, s.Now())
		paid, err = s.Confirmations.SetPaid(txCtx, p.ID, key.UserID, c.PaidAt, c.PaidBy)
		return err
	})
	if err != nil {
		return payroll.ConfirmationResponse{}, err
	}

	s.broadcast(ctx, []string{key.UserID}, notification.TypePayrollPaid,
		fmt.Sprintf("Your %s salary was paid", ym),
		fmt.Sprintf("Your salary for %s has been marked as paid.", ym),
		map[string]interface{}{"month": ym.String()})
	return payroll.NewConfirmationResponse(paid), nil
}

func (s *PayrollServiceImpl) UnmarkPaid(ctx context.Context, key payroll.ConfirmationKey) (payroll.ConfirmationResponse, error) {
	if err := key.Validate(); err != nil {
		return payroll.ConfirmationResponse{}, err
	}
	ym, _ := validator.IsValidYearMonth(key.Month)

	var unpaid payroll.Confirmation
	err := s.withClosedPeriod(ctx, ym, func(txCtx context.Context, p payroll.Period) error {
		c, err := s.Confirmations.Get(txCtx, p.ID, key.UserID)
		if err != nil {
			return err
		}
		if !c.IsPaid() {
			unpaid = c
			return nil
		}
		c.UnmarkPaid()
		unpaid, err = s.Confirmations.SetPaid(txCtx, p.ID, key.UserID, nil, nil)
		return err
	})
	if err != nil {
		return payroll.ConfirmationResponse{}, err
	}
	return payroll.NewConfirmationResponse(unpaid), nil
}

// ========== REMINDERS ==========

func (s *PayrollServiceImpl) RemindUnconfirmed(ctx context.Context, now time.Time) (int, error) {
	since := localtime.YearMonthOf(now, s.Location).Prev()
	periods, err := s.Periods.ListClosedSince(ctx, since)
	if err != nil {
		return 0, err
	}

	day := localtime.LocalDate(now, s.Location)
	sent := 0
	for _, p := range periods {
		month := localtime.MonthRange(p.YearMonth, s.Location)
		employees, err := s.Shifts.ListEmployeeIDs(ctx, month.Start, month.Until())
		if err != nil {
			return sent, err
		}
		confirmed, err := s.Confirmations.ListByPeriod(ctx, p.ID)
		if err != nil {
			return sent, err
		}
		done := make(map[string]bool, len(confirmed))
		for _, c := range confirmed {
			done[c.UserID] = true
		}

		for _, id := range employees {
			if done[id] {
				continue
			}
			profile, err := s.Profiles.GetByID(ctx, id)
			if err != nil || !profile.IsActive {
				continue
			}
			marked, err := s.Reminders.MarkReminded(ctx, p.YearMonth, id, day)
			if err != nil {
				slog.Warn("reminder ledger unavailable", "error", err)
			} else if !marked {
				continue
			}

			err = s.Notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
				RecipientID: id,
				Type:        notification.TypeConfirmationReminder,
				Title:       fmt.Sprintf("Please confirm your %s payroll", p.YearMonth),
				Message:     fmt.Sprintf("Your payroll for %s is closed and waiting for your confirmation.", p.YearMonth),
				Data:        map[string]interface{}{"month": p.YearMonth.String()},
			})
			if err != nil {
				slog.Warn("failed to queue confirmation reminder", "recipient", id, "month", p.YearMonth.String(), "error", err)
				if marked {
					if err := s.Reminders.Forget(ctx, p.YearMonth, id, day); err != nil {
						slog.Warn("failed to release reminder mark", "recipient", id, "error", err)
					}
				}
				continue
			}
			sent++
		}
	}
	return sent, nil
}

// ========== HELPERS ==========

func rolePtr(r user.Role) *user.Role {
	return &r
}

func (s *PayrollServiceImpl) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate payroll cache", "error", err)
	}
}

func (s *PayrollServiceImpl) broadcast(ctx context.Context, recipients []string, t notification.NotificationType, title, message string, data map[string]interface{}) {
	if s.Notifier == nil || len(recipients) == 0 {
		return
	}
	var sender *string
	if actor, err := user.ActorFromContext(ctx); err == nil {
		sender = &actor.UserID
	}
	reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
	for _, id := range recipients {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: id,
			SenderID:    sender,
			Type:        t,
			Title:       title,
			Message:     message,
			Data:        data,
		})
	}
	if err := s.Notifier.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Warn("failed to queue payroll notifications", "error", err, "type", string(t))
	}
}
