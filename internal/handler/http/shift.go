package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	BulkCreate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

func shiftQuery(r *http.Request) shift.ListShiftsQuery {
	return shift.ListShiftsQuery{
		Month:      r.URL.Query().Get("month"),
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
	}
}

func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.List(r.Context(), shiftQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.shiftService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}

func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	s, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift created", s)
}

func (h *shiftHandlerImpl) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req shift.BulkCreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	shifts, err := h.shiftService.BulkCreate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, fmt.Sprintf("%d shifts created", len(shifts)), shifts)
}

func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	s, err := h.shiftService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift updated", s)
}

func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Calendar serves the caller's shifts of ?month= as an iCalendar file.
func (h *shiftHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	query := shiftQuery(r)
	feed, err := h.shiftService.Calendar(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month := query.Month
	if ym, err := localtime.ParseYearMonth(month); err == nil {
		month = ym.String()
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="shifts-%s.ics"`, month))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(feed)
}
