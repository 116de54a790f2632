package entity

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested id or key.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("record already exists")

	// ErrUnauthorized is returned for bad credentials or an unusable token.
	ErrUnauthorized = errors.New("unauthorized")
)
