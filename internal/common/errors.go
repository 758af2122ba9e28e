// Package common defines shared constants and sentinel errors used across
// the trackly layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Storage failures. Services wrap driver errors with this value so that
	// callers never depend on the underlying driver error types.
	ErrStorage = errors.New("storage failure")

	// Authentication errors.
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")

	// Password change guard.
	ErrMissingCredential = errors.New("current password required")
	ErrWrongCredential   = errors.New("current password incorrect")

	// Session ledger errors.
	ErrSessionAlreadyActive = errors.New("there is already an active session")
	ErrInvalidSessionState  = errors.New("invalid session state")

	// Validation errors.
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidName      = errors.New("name is required")
	ErrInvalidImage     = errors.New("invalid image")
)
