package store

import (
	"errors"
	"fmt"
)

// Error kinds returned by every TaskStore implementation. Adapters classify
// raw backend failures into one of these before returning, so callers never
// need to inspect driver-specific error types.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrUnavailable is returned when the store could not be reached or the
	// operation could not be executed (connection failure, timeout, cancelled
	// context, or any failure the adapter does not recognize).
	ErrUnavailable = errors.New("store unavailable")

	// ErrConflict is returned when the store rejected the operation because of
	// a constraint it enforces (unique, check, not-null, foreign key), or when an
	// optimistic write lost a race too many times.
	ErrConflict = errors.New("conflicting write")

	// ErrInvalidEntity is returned when a record read from or written to the
	// store fails domain validation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTaskNotFound indicates that no task exists with the requested ID.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailableError checks if the error means the store could not serve the request.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsConflictError checks if the error is a constraint or write-race conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// StoreError is a custom error type for store-specific errors with additional context.
// Kind is one of the sentinel errors above; Err is the raw backend error.
type StoreError struct {
	Entity    string // The entity type (e.g., "task")
	Operation string // The operation that failed (e.g., "create", "update")
	Kind      error  // The classified error kind
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %v: %v", e.Operation, e.Entity, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Kind)
}

// Unwrap exposes both the kind and the original error to errors.Is/errors.As.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewStoreError creates a new StoreError for the given entity, operation and kind.
func NewStoreError(entity, operation string, kind, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Kind:      kind,
		Err:       err,
	}
}
