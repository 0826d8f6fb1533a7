package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrGoogleIDLinked     = errors.New("google account already linked to another user")
	ErrInvalidRole        = errors.New("invalid role")
)
