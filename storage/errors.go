package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when an entity is not found.
	ErrNotFound = errors.New("entity not found")

	// ErrEmptyOperation is returned for an add or update operation
	// that carries no entity payload.
	ErrEmptyOperation = errors.New("operation has no entity payload")
)
