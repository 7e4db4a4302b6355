package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/notification"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/export"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	profileRepo  user.ProfileRepository
	activityRepo activity.ActivityRepository
	gate         payroll.PeriodGate
	cache        payroll.CacheInvalidator
	notifier     notification.Notifier
	loc          *time.Location
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	profileRepo user.ProfileRepository,
	activityRepo activity.ActivityRepository,
	gate payroll.PeriodGate,
	cache payroll.CacheInvalidator,
	notifier notification.Notifier,
	loc *time.Location,
) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:    shiftRepo,
		profileRepo:  profileRepo,
		activityRepo: activityRepo,
		gate:         gate,
		cache:        cache,
		notifier:     notifier,
		loc:          loc,
	}
}

// ========== READ ==========

// scope returns the employee filter the actor may use: everyone may read
// their own shifts, only shift.view_all may read others'.
func scope(actor user.Actor, requested *string) (*string, error) {
	if actor.Can(user.PermissionShiftViewAll) {
		return requested, nil
	}
	if requested != nil && *requested != actor.UserID {
		return nil, shift.ErrForbidden
	}
	self := actor.UserID
	return &self, nil
}

func (s *ShiftServiceImpl) records(ctx context.Context, query shift.ListShiftsQuery) ([]shift.Record, localtime.YearMonth, error) {
	if err := query.Validate(); err != nil {
		return nil, localtime.YearMonth{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, localtime.YearMonth{}, err
	}
	employeeID, err := scope(actor, query.EmployeeID)
	if err != nil {
		return nil, localtime.YearMonth{}, err
	}

	ym, _ := validator.IsValidYearMonth(query.Month)
	month := localtime.MonthRange(ym, s.loc)
	records, err := s.shiftRepo.ListRecords(ctx, shift.Filter{
		StartFrom:  month.Start,
		StartUntil: month.Until(),
		EmployeeID: employeeID,
	})
	return records, ym, err
}

func (s *ShiftServiceImpl) List(ctx context.Context, query shift.ListShiftsQuery) ([]shift.ShiftResponse, error) {
	records, _, err := s.records(ctx, query)
	if err != nil {
		return nil, err
	}
	responses := make([]shift.ShiftResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, shift.NewShiftResponse(r, s.loc))
	}
	return responses, nil
}

func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	rec, err := s.shiftRepo.GetRecord(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !actor.Can(user.PermissionShiftViewAll) && rec.EmployeeID != actor.UserID {
		return shift.ShiftResponse{}, shift.ErrForbidden
	}
	return shift.NewShiftResponse(rec, s.loc), nil
}

func (s *ShiftServiceImpl) Calendar(ctx context.Context, query shift.ListShiftsQuery) ([]byte, error) {
	records, ym, err := s.records(ctx, query)
	if err != nil {
		return nil, err
	}

	events := make([]export.CalendarEvent, 0, len(records))
	for _, r := range records {
		ev := export.CalendarEvent{
			UID:       r.ID,
			Summary:   r.ActivityName,
			Start:     r.StartAt,
			End:       r.EndAt,
			UpdatedAt: r.UpdatedAt,
		}
		if r.Note != nil {
			ev.Description = *r.Note
		}
		events = append(events, ev)
	}
	return export.Calendar(fmt.Sprintf("MoL Coffee shifts %s", ym), events), nil
}

// ========== WRITE ==========

// checkAssignees verifies the employee and activity exist and are active.
func (s *ShiftServiceImpl) checkAssignees(ctx context.Context, employeeID, activityID string) error {
	p, err := s.profileRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return shift.ErrEmployeeNotFound
		}
		return err
	}
	if !p.IsActive {
		return shift.ErrEmployeeInactive
	}

	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			return shift.ErrActivityNotFound
		}
		return err
	}
	if !a.IsActive {
		return shift.ErrActivityInactive
	}
	return nil
}

// neighbours loads the employee's shifts that can conflict with [from, until).
func (s *ShiftServiceImpl) neighbours(ctx context.Context, employeeID string, from, until time.Time) ([]shift.Shift, error) {
	start := localtime.StartOfDay(from, s.loc).Add(-24 * time.Hour)
	return s.shiftRepo.ListForEmployee(ctx, employeeID, start, until.Add(24*time.Hour))
}

func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	candidate := req.ToShift(s.loc)
	if err := s.checkAssignees(ctx, candidate.EmployeeID, candidate.ActivityID); err != nil {
		return shift.ShiftResponse{}, err
	}

	var created shift.Shift
	err := s.gate.WithOpenMonths(ctx, []localtime.YearMonth{candidate.Month(s.loc)}, func(txCtx context.Context) error {
		existing, err := s.neighbours(txCtx, candidate.EmployeeID, candidate.StartAt, candidate.EndAt)
		if err != nil {
			return err
		}
		if err := shift.ValidateConflicts(candidate, existing, s.loc); err != nil {
			return err
		}
		created, err = s.shiftRepo.Create(txCtx, candidate)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.afterWrite(ctx)
	s.notify(ctx, created.EmployeeID, notification.TypeShiftAssigned, "New shift assigned", created)
	return s.response(ctx, created.ID)
}

func (s *ShiftServiceImpl) BulkCreate(ctx context.Context, req shift.BulkCreateShiftRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	candidates := req.Expand(s.loc)
	if len(candidates) == 0 {
		return nil, validator.ValidationErrors{{Field: "weekdays", Message: "no days in range match the selected weekdays"}}
	}
	if err := s.checkAssignees(ctx, req.EmployeeID, req.ActivityID); err != nil {
		return nil, err
	}

	months := make([]localtime.YearMonth, 0, 3)
	for _, c := range candidates {
		months = append(months, c.Month(s.loc))
	}

	created := make([]shift.Shift, 0, len(candidates))
	first, last := candidates[0], candidates[len(candidates)-1]
	err := s.gate.WithOpenMonths(ctx, months, func(txCtx context.Context) error {
		existing, err := s.neighbours(txCtx, req.EmployeeID, first.StartAt, last.EndAt)
		if err != nil {
			return err
		}
		if err := shift.ValidateBatch(candidates, existing, s.loc); err != nil {
			return err
		}
		for _, c := range candidates {
			sh, err := s.shiftRepo.Create(txCtx, c)
			if err != nil {
				return err
			}
			created = append(created, sh)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx)
	s.queue(ctx, notification.CreateNotificationRequest{
		RecipientID: req.EmployeeID,
		Type:        notification.TypeShiftAssigned,
		Title:       "New shifts assigned",
		Message: fmt.Sprintf("%d shifts were scheduled between %s and %s",
			len(created), localtime.LocalDate(first.StartAt, s.loc), localtime.LocalDate(last.StartAt, s.loc)),
		Data: map[string]interface{}{"count": len(created), "from": req.From, "to": req.To},
	})

	responses := make([]shift.ShiftResponse, 0, len(created))
	for _, sh := range created {
		resp, err := s.response(ctx, sh.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	current, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	candidate := req.ToShift(s.loc)
	candidate.ID = current.ID
	if err := s.checkAssignees(ctx, candidate.EmployeeID, candidate.ActivityID); err != nil {
		return shift.ShiftResponse{}, err
	}

	// Moving a shift touches both the month it leaves and the one it enters.
	months := []localtime.YearMonth{current.Month(s.loc), candidate.Month(s.loc)}

	var updated shift.Shift
	err = s.gate.WithOpenMonths(ctx, months, func(txCtx context.Context) error {
		existing, err := s.neighbours(txCtx, candidate.EmployeeID, candidate.StartAt, candidate.EndAt)
		if err != nil {
			return err
		}
		if err := shift.ValidateConflicts(candidate, existing, s.loc); err != nil {
			return err
		}
		updated, err = s.shiftRepo.Update(txCtx, candidate)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	s.afterWrite(ctx)
	s.notify(ctx, updated.EmployeeID, notification.TypeShiftUpdated, "Shift updated", updated)
	if current.EmployeeID != updated.EmployeeID {
		s.notify(ctx, current.EmployeeID, notification.TypeShiftRemoved, "Shift removed", current)
	}
	return s.response(ctx, updated.ID)
}

func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.gate.WithOpenMonths(ctx, []localtime.YearMonth{current.Month(s.loc)}, func(txCtx context.Context) error {
		return s.shiftRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.afterWrite(ctx)
	s.notify(ctx, current.EmployeeID, notification.TypeShiftRemoved, "Shift removed", current)
	return nil
}

// ========== HELPERS ==========

func (s *ShiftServiceImpl) response(ctx context.Context, id string) (shift.ShiftResponse, error) {
	rec, err := s.shiftRepo.GetRecord(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(rec, s.loc), nil
}

func (s *ShiftServiceImpl) afterWrite(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate payroll cache", "error", err)
	}
}

func (s *ShiftServiceImpl) notify(ctx context.Context, recipientID string, t notification.NotificationType, title string, sh shift.Shift) {
	start := sh.StartAt.In(s.loc)
	s.queue(ctx, notification.CreateNotificationRequest{
		RecipientID: recipientID,
		Type:        t,
		Title:       title,
		Message:     fmt.Sprintf("%s %s - %s", start.Format("Mon 02/01/2006"), start.Format("15:04"), sh.EndAt.In(s.loc).Format("15:04")),
		Data: map[string]interface{}{
			"shift_id": sh.ID,
			"start_at": sh.StartAt.Format(time.RFC3339),
			"end_at":   sh.EndAt.Format(time.RFC3339),
			"month":    sh.Month(s.loc).String(),
		},
	})
}

func (s *ShiftServiceImpl) queue(ctx context.Context, req notification.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if actor, err := user.ActorFromContext(ctx); err == nil && actor.UserID != req.RecipientID {
		req.SenderID = &actor.UserID
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Warn("failed to queue shift notification", "error", err, "recipient_id", req.RecipientID)
	}
}
