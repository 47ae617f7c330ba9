package store

import "errors"

var (
	// ErrNotFound indicates the counter doesn't exist.
	ErrNotFound = errors.New("counter not found")
	// ErrValidation indicates invalid input for counter operations.
	ErrValidation = errors.New("invalid counter input")
)
