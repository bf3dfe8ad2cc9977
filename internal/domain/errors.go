package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
