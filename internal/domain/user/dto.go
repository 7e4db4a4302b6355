package user

import (
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
)

type ProfileFilter struct {
	Role       *Role
	ActiveOnly bool
}

// ProfileResponse represents profile data in API responses
type ProfileResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Role:      string(p.Role),
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CreateProfileRequest registers an auth-provider user locally
type CreateProfileRequest struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid UUID"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if r.Role == "" {
		r.Role = string(RoleEmployee)
	}
	if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be admin or employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name cannot be empty"})
	}
	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be admin or employee"})
	}
	if r.FullName == nil && r.Role == nil && r.IsActive == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
