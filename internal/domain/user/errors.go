package user

import "errors"

var (
	ErrProfileNotFound         = errors.New("profile not found")
	ErrProfileInactive         = errors.New("profile is inactive")
	ErrProfileExists           = errors.New("profile already exists")
	ErrProfileEmailExists      = errors.New("email already registered")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrActorMissing            = errors.New("authenticated actor missing from context")
	ErrCannotDemoteSelf        = errors.New("cannot remove your own admin role or deactivate yourself")
)
