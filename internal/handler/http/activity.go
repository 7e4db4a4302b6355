package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetActive(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.ActivityService
}

func NewActivityHandler(activityService activity.ActivityService) ActivityHandler {
	return &activityHandlerImpl{activityService: activityService}
}

func (h *activityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.List(r.Context(), getBoolQueryParam(r, "active", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, activities)
}

func (h *activityHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.activityService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, a)
}

func (h *activityHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req activity.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	a, err := h.activityService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Activity created", a)
}

func (h *activityHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req activity.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	a, err := h.activityService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Activity updated", a)
}

func (h *activityHandlerImpl) SetActive(w http.ResponseWriter, r *http.Request) {
	var req activity.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	a, err := h.activityService.SetActive(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Activity updated", a)
}
