package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// TaskEventType names a task lifecycle transition.
type TaskEventType string

// Task lifecycle event types.
const (
	TaskCreated TaskEventType = "task.created"
	TaskUpdated TaskEventType = "task.updated"
	TaskDeleted TaskEventType = "task.deleted"
)

// TaskEvent records a completed change to a task.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates which transition happened
	Type TaskEventType `json:"type"`

	// TaskID is the ID of the affected task
	TaskID uuid.UUID `json:"task_id"`

	// Task is the task's state after the change; for task.deleted it is the
	// last state before removal
	Task *domain.Task `json:"task"`

	// OccurredAt is the time the event was created
	OccurredAt time.Time `json:"occurred_at"`
}

// NewTaskEvent creates a TaskEvent of the given type for task.
// The event carries its own copy of the task.
func NewTaskEvent(eventType TaskEventType, task *domain.Task) *TaskEvent {
	event := &TaskEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Task:       task.Clone(),
		OccurredAt: time.Now().UTC(),
	}
	if task != nil {
		event.TaskID = task.ID
	}
	return event
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows stores to publish events without direct knowledge of where
// they are delivered.
type EventEmitter interface {
	// EmitEvent publishes the given event.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}
