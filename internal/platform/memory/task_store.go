package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Clock returns the current time. Tests inject a fixed or stepping clock.
type Clock func() time.Time

// TaskStore implements store.TaskStore in memory.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]*domain.Task
	now    Clock
	logger *slog.Logger
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock sets the clock used to stamp CreatedAt.
func WithClock(clock Clock) Option {
	return func(s *TaskStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *TaskStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:  make(map[uuid.UUID]*domain.Task),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "memory_task_store")
	return s
}

// Ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, title, content string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "create", store.ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	for _, exists := s.tasks[id]; exists; _, exists = s.tasks[id] {
		id = uuid.New()
	}

	task := &domain.Task{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	s.tasks[id] = task

	s.logger.Debug("task created", slog.String("task_id", id.String()))
	return task.Clone(), nil
}

// GetAll implements store.TaskStore.
func (s *TaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "get_all", store.ErrUnavailable, err)
	}

	s.mu.RLock()
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}
	s.mu.RUnlock()

	domain.SortTasks(tasks)
	return tasks, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "update", store.ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	task.Merge(title, content)
	s.logger.Debug("task updated", slog.String("task_id", id.String()))
	return task.Clone(), nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "delete", store.ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	delete(s.tasks, id)

	s.logger.Debug("task deleted", slog.String("task_id", id.String()))
	return task, nil
}
