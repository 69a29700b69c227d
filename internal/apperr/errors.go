// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import "errors"

var (
	// ErrValidation signals missing or malformed required input.
	// The store is never touched when this is returned.
	ErrValidation = errors.New("validation error")

	// ErrUsernameTaken signals a registration attempt with a username
	// that already exists. The store rejected the insert; no row persists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so that responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownUser signals a file advertisement whose shared_by does not
	// reference an existing user. Returned only when owner enforcement is on.
	ErrUnknownUser = errors.New("unknown user")
)
