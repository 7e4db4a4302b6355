package activity

import "errors"

var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrActivityNameExists = errors.New("activity name already exists")
	ErrActivityInactive   = errors.New("activity is inactive")
)
