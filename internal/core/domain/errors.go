package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors, which wrap ErrStorage.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrStorage indicates the backing store failed (unavailable, I/O, schema).
	// Callers should not expose the wrapped detail to end users.
	ErrStorage = errors.New("storage failure")
)

// Validation errors. Each wraps ErrInvalidInput.
var (
	// ErrEmptyTitle indicates a task title that is empty after trimming.
	ErrEmptyTitle = fmt.Errorf("title must not be empty: %w", ErrInvalidInput)

	// ErrEmptyPatch indicates an update that names no field to change.
	ErrEmptyPatch = fmt.Errorf("no fields to update: %w", ErrInvalidInput)
)
