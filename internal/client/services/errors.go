package services

import "errors"

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidInput       = errors.New("username and password are required")
	ErrInvalidCountry     = errors.New("country has no code")

	// ErrPersistence wraps registry write failures. The in-memory session is
	// left as it was before the failed call.
	ErrPersistence = errors.New("failed to persist session")
)
