package session

import "errors"

var (
	// ErrNotFound indicates the counter doesn't exist in the local store.
	ErrNotFound = errors.New("counter not found")
	// ErrValidation indicates invalid input for counter operations.
	ErrValidation = errors.New("invalid counter input")
)
