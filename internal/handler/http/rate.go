package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
)

type RateHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type rateHandlerImpl struct {
	rateService rate.RateService
}

func NewRateHandler(rateService rate.RateService) RateHandler {
	return &rateHandlerImpl{rateService: rateService}
}

func (h *rateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rateService.List(r.Context(), getOptionalQueryParam(r, "activity_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rates)
}

func (h *rateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	rt, err := h.rateService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rt)
}

func (h *rateHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req rate.CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rt, err := h.rateService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Rate created", rt)
}

func (h *rateHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req rate.UpdateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	rt, err := h.rateService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Rate updated", rt)
}
