package common

import "errors"

var (
	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")

	// Login input validation.
	ErrEmptyCredentials = errors.New("username and password are required")
)
