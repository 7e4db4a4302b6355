package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Computation
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetDailyBreakdown(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)

	// Periods
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	ClosePeriod(w http.ResponseWriter, r *http.Request)
	ReopenPeriod(w http.ResponseWriter, r *http.Request)
	DeletePeriod(w http.ResponseWriter, r *http.Request)

	// Confirmations
	ListConfirmations(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Unconfirm(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	UnmarkPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func payrollQuery(r *http.Request) payroll.PayrollQuery {
	return payroll.PayrollQuery{
		Month:      r.URL.Query().Get("month"),
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
		Live:       getBoolQueryParam(r, "live", false),
	}
}

func confirmationKey(r *http.Request) payroll.ConfirmationKey {
	return payroll.ConfirmationKey{
		Month:  chi.URLParam(r, "month"),
		UserID: chi.URLParam(r, "user_id"),
	}
}

// ========== COMPUTATION ==========

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payrollService.GetSummary(r.Context(), payrollQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *payrollHandlerImpl) GetDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	daily, err := h.payrollService.GetDailyBreakdown(r.Context(), payrollQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, daily)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.ExportWorkbook(r.Context(), payrollQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.payrollService.ListPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, periods)
}

func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.payrollService.GetPeriod(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, period)
}

func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	period, err := h.payrollService.CreatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll period created", period)
}

func (h *payrollHandlerImpl) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.payrollService.ClosePeriod(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll period closed", period)
}

func (h *payrollHandlerImpl) ReopenPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.payrollService.ReopenPeriod(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll period reopened", period)
}

func (h *payrollHandlerImpl) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePeriod(r.Context(), chi.URLParam(r, "month")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll period deleted", nil)
}

// ========== CONFIRMATIONS ==========

func (h *payrollHandlerImpl) ListConfirmations(w http.ResponseWriter, r *http.Request) {
	confirmations, err := h.payrollService.ListConfirmations(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, confirmations)
}

// Confirm accepts an empty body for a self-confirmation.
func (h *payrollHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req payroll.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Month = chi.URLParam(r, "month")

	confirmation, err := h.payrollService.Confirm(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll confirmed", confirmation)
}

func (h *payrollHandlerImpl) Unconfirm(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.Unconfirm(r.Context(), confirmationKey(r)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll confirmation removed", nil)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	confirmation, err := h.payrollService.MarkPaid(r.Context(), confirmationKey(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll marked as paid", confirmation)
}

func (h *payrollHandlerImpl) UnmarkPaid(w http.ResponseWriter, r *http.Request) {
	confirmation, err := h.payrollService.UnmarkPaid(r.Context(), confirmationKey(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll payment mark removed", confirmation)
}
