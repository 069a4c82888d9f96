package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		notFound    bool
		unavailable bool
		conflict    bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, notFound: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, notFound: true},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to delete task: %w", ErrTaskNotFound),
			notFound: true,
		},
		{name: "ErrUnavailable", err: ErrUnavailable, unavailable: true},
		{name: "ErrConflict", err: ErrConflict, conflict: true},
		{
			name:        "StoreError with unavailable kind",
			err:         NewStoreError("task", "create", ErrUnavailable, context.DeadlineExceeded),
			unavailable: true,
		},
		{
			name:     "StoreError with not found kind",
			err:      NewStoreError("task", "update", ErrTaskNotFound, sql.ErrNoRows),
			notFound: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.notFound, IsNotFoundError(tc.err))
			assert.Equal(t, tc.unavailable, IsUnavailableError(tc.err))
			assert.Equal(t, tc.conflict, IsConflictError(tc.err))
		})
	}
}

func TestErrTaskNotFoundMessage(t *testing.T) {
	assert.Equal(t, "entity not found: task", ErrTaskNotFound.Error())
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		raw := errors.New("connection refused")
		err := NewStoreError("task", "create", ErrUnavailable, raw)

		assert.Equal(t, "create operation on task failed: store unavailable: connection refused", err.Error())
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, raw)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("task", "delete", ErrTaskNotFound, nil)

		assert.Equal(t, "delete operation on task failed: entity not found: task", err.Error())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("errors.As finds the store error", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", NewStoreError("task", "update", ErrConflict, nil))

		var storeErr *StoreError
		assert.True(t, errors.As(wrapped, &storeErr))
		assert.Equal(t, "update", storeErr.Operation)
		assert.Equal(t, "task", storeErr.Entity)
	})
}
