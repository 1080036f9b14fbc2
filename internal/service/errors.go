package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotApproved        = errors.New("account is not approved")
	ErrDuplicateKey       = errors.New("username or email already exists")
	ErrMissingFields      = errors.New("required fields are blank")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidTransition  = errors.New("invalid account status transition")
	ErrAdminImmutable     = errors.New("administrator account status cannot be changed")
)
