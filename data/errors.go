package data

import "errors"

var (
	// ErrBadCapacity indicates a requested capacity outside [1, MaxCapacity].
	ErrBadCapacity = errors.New("data: capacity must be between 1 and 65535")

	// ErrEmptyName indicates an array was constructed without a name.
	ErrEmptyName = errors.New("data: array name must not be empty")
)
