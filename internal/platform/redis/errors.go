package redis

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-api/internal/store"
)

// MapError classifies a Redis client error into one of the store error kinds.
// Errors the store already classified pass through unchanged. Any other
// client failure, such as a refused connection or an expired context, is
// unavailability.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	// Already classified
	if errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrConflict) ||
		errors.Is(err, store.ErrUnavailable) ||
		errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
}
