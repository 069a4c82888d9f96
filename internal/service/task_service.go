package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides the task use cases exposed over HTTP.
// Each operation delegates to the injected store.TaskStore and returns its
// result and error unchanged.
type TaskService interface {
	// CreateTask persists a new task and returns it with its assigned ID and
	// creation time.
	CreateTask(ctx context.Context, title, content string) (*domain.Task, error)

	// GetTasks returns every task. An empty store yields an empty slice.
	GetTasks(ctx context.Context) ([]*domain.Task, error)

	// UpdateTask replaces the set fields of the task and returns its new state.
	// Returns store.ErrTaskNotFound if the task does not exist.
	UpdateTask(
		ctx context.Context,
		id uuid.UUID,
		title, content domain.Optional[string],
	) (*domain.Task, error)

	// DeleteTask removes the task and returns its last state.
	// Returns store.ErrTaskNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo   store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService backed by repo.
// It returns an error if repo is nil.
func NewTaskService(repo store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, title, content string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("creating task")

	return s.repo.Create(ctx, title, content)
}

// GetTasks implements TaskService.
func (s *taskServiceImpl) GetTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing tasks")

	return s.repo.GetAll(ctx)
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("updating task",
		slog.String("task_id", id.String()),
		slog.Bool("title_set", title.IsSet()),
		slog.Bool("content_set", content.IsSet()))

	return s.repo.Update(ctx, id, title, content)
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("deleting task", slog.String("task_id", id.String()))

	return s.repo.Delete(ctx, id)
}
