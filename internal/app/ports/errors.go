package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrUnavailable marks a backing service that could not be reached.
	ErrUnavailable = errors.New("backend unavailable")
)
