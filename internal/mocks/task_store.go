package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Each method calls its function field when set; otherwise it returns the
// default values. Calls are recorded so tests can assert on delegation.
type MockTaskStore struct {
	CreateFn func(ctx context.Context, title, content string) (*domain.Task, error)
	GetAllFn func(ctx context.Context) ([]*domain.Task, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, title, content domain.Optional[string]) (*domain.Task, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error

	mu    sync.Mutex
	calls []string
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the names of the methods invoked, in order.
func (m *MockTaskStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, title, content string) (*domain.Task, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, title, content)
	}
	return m.Task, m.DefaultError
}

// GetAll implements store.TaskStore.
func (m *MockTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	m.record("GetAll")
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, title, content)
	}
	return m.Task, m.DefaultError
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Task, m.DefaultError
}
