package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn func(ctx context.Context, title, content string) (*domain.Task, error)
	GetTasksFn   func(ctx context.Context) ([]*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id uuid.UUID, title, content domain.Optional[string]) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, title, content string) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, content)
	}
	return m.Task, m.DefaultError
}

// GetTasks implements the TaskService.GetTasks method
func (m *MockTaskService) GetTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.GetTasksFn != nil {
		return m.GetTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, title, content)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Task, m.DefaultError
}
