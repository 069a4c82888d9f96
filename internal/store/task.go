package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the persistence contract for tasks.
// Any implementation can be substituted (postgres, redis, in-memory) without
// the service or HTTP layers changing.
type TaskStore interface {
	// Create assigns an ID and creation time, persists the task and returns it.
	Create(ctx context.Context, title, content string) (*domain.Task, error)

	// GetAll returns every persisted task, ordered by creation time.
	// Returns an empty slice, not an error, when no tasks exist.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// Update replaces each set field and leaves unset fields untouched,
	// returning the task after the merge. Calling it with both fields unset
	// returns the current task unchanged.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, title, content domain.Optional[string]) (*domain.Task, error)

	// Delete removes the task and returns its last state.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}
