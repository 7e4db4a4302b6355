package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService user.ProfileService
}

func NewProfileHandler(profileService user.ProfileService) ProfileHandler {
	return &profileHandlerImpl{profileService: profileService}
}

func (h *profileHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

// List supports ?role=admin|employee and ?active=true.
func (h *profileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := user.ProfileFilter{ActiveOnly: getBoolQueryParam(r, "active", false)}
	if role := r.URL.Query().Get("role"); role != "" {
		rl := user.Role(role)
		if !rl.IsValid() {
			response.ValidationError(w, map[string]string{"role": "role must be admin or employee"})
			return
		}
		filter.Role = &rl
	}

	profiles, err := h.profileService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profiles)
}

func (h *profileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *profileHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.profileService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Profile created", profile)
}

func (h *profileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	profile, err := h.profileService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated", profile)
}
