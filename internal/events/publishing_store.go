package events

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// PublishingTaskStore decorates a store.TaskStore, emitting a TaskEvent after
// each successful Create, Update and Delete. Results and errors of the
// wrapped store are returned unchanged; reads pass straight through.
type PublishingTaskStore struct {
	next    store.TaskStore
	emitter EventEmitter
	logger  *slog.Logger
}

var _ store.TaskStore = (*PublishingTaskStore)(nil)

// NewPublishingTaskStore wraps next so that its mutations are published to emitter.
// It panics if next or emitter is nil.
func NewPublishingTaskStore(next store.TaskStore, emitter EventEmitter, l *slog.Logger) *PublishingTaskStore {
	if next == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("next task store cannot be nil")
	}
	if emitter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("event emitter cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &PublishingTaskStore{
		next:    next,
		emitter: emitter,
		logger:  l.With("component", "publishing_task_store"),
	}
}

// Create implements store.TaskStore.
func (s *PublishingTaskStore) Create(ctx context.Context, title, content string) (*domain.Task, error) {
	task, err := s.next.Create(ctx, title, content)
	if err != nil {
		return task, err
	}
	s.publish(ctx, TaskCreated, task)
	return task, nil
}

// GetAll implements store.TaskStore.
func (s *PublishingTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	return s.next.GetAll(ctx)
}

// Update implements store.TaskStore.
// An update that sets no field changes nothing and publishes no event.
func (s *PublishingTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	task, err := s.next.Update(ctx, id, title, content)
	if err != nil {
		return task, err
	}
	if title.IsSet() || content.IsSet() {
		s.publish(ctx, TaskUpdated, task)
	}
	return task, nil
}

// Delete implements store.TaskStore.
func (s *PublishingTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.next.Delete(ctx, id)
	if err != nil {
		return task, err
	}
	s.publish(ctx, TaskDeleted, task)
	return task, nil
}

func (s *PublishingTaskStore) publish(ctx context.Context, eventType TaskEventType, task *domain.Task) {
	event := NewTaskEvent(eventType, task)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit task event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", string(eventType)),
			slog.String("task_id", event.TaskID.String()),
			slog.String("error", redact.Error(err)))
	}
}
