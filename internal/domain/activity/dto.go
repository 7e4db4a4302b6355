package activity

import (
	"strings"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

type ActivityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewActivityResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		Name:      a.Name,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type CreateActivityRequest struct {
	Name string `json:"name"`
}

func (r *CreateActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be at most 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateActivityRequest struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (r *UpdateActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be at most 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (r *SetActiveRequest) Validate() error {
	if r.IsActive == nil {
		return validator.ValidationErrors{{Field: "is_active", Message: "is_active is required"}}
	}
	return nil
}
