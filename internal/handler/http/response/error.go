package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/notification"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var locked *payroll.PeriodLockedError
	if errors.As(err, &locked) {
		Locked(w, locked.Error(), locked.YearMonth.String())
		return
	}

	var conflict *shift.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "SHIFT_CONFLICT",
				Message: conflict.Error(),
				Details: conflictDetails(conflict),
			},
		})
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrActorMissing):
		Unauthorized(w, "Unauthorized")
	case errors.Is(err, user.ErrProfileInactive):
		Forbidden(w, "Profile is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, user.ErrProfileExists),
		errors.Is(err, user.ErrProfileEmailExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrCannotDemoteSelf):
		BadRequest(w, err.Error(), nil)

	// Activity and rate errors
	case errors.Is(err, activity.ErrActivityNotFound),
		errors.Is(err, rate.ErrActivityNotFound),
		errors.Is(err, shift.ErrActivityNotFound):
		NotFound(w, "Activity not found")
	case errors.Is(err, activity.ErrActivityNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, activity.ErrActivityInactive),
		errors.Is(err, shift.ErrActivityInactive):
		BadRequest(w, "Activity is inactive", nil)
	case errors.Is(err, rate.ErrRateNotFound):
		NotFound(w, "Rate not found")
	case errors.Is(err, rate.ErrInvalidRateWindow),
		errors.Is(err, rate.ErrNegativeHourlyRate):
		BadRequest(w, err.Error(), nil)

	// Shift errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, shift.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)
	case errors.Is(err, shift.ErrInvalidInterval):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrShiftOverlap),
		errors.Is(err, shift.ErrTooManyShiftsPerDay):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrForbidden),
		errors.Is(err, payroll.ErrForbidden):
		Forbidden(w, err.Error())

	// Payroll errors
	case errors.Is(err, payroll.ErrPeriodLocked):
		Locked(w, err.Error(), "")
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrConfirmationNotFound):
		NotFound(w, "Payroll confirmation not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists),
		errors.Is(err, payroll.ErrPeriodAlreadyClosed),
		errors.Is(err, payroll.ErrPeriodAlreadyOpen),
		errors.Is(err, payroll.ErrPeriodNotClosed),
		errors.Is(err, payroll.ErrPeriodHasPaidConfirmations),
		errors.Is(err, payroll.ErrConfirmationRequired),
		errors.Is(err, payroll.ErrConfirmationAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, localtime.ErrInvalidYearMonth):
		ValidationError(w, map[string]string{"month": "month must be YYYY-MM"})

	// Notification errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func conflictDetails(e *shift.ConflictError) map[string]string {
	details := map[string]string{"reason": e.Reason.Error()}
	if e.ShiftID != "" {
		details["shift_id"] = e.ShiftID
	}
	return details
}
