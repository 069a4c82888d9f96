package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryService(t *testing.T) service.TaskService {
	t.Helper()
	svc, err := service.NewTaskService(memory.NewTaskStore(), nil)
	require.NoError(t, err)
	return svc
}

func TestNewTaskService(t *testing.T) {
	t.Run("nil repository", func(t *testing.T) {
		svc, err := service.NewTaskService(nil, nil)
		assert.Nil(t, svc)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "repo")
	})

	t.Run("valid repository", func(t *testing.T) {
		svc, err := service.NewTaskService(&mocks.MockTaskStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestTaskService_TestTaskScenario(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	created, err := svc.CreateTask(ctx, "Test Task", "This is a test task")
	require.NoError(t, err)
	assert.Equal(t, "Test Task", created.Title)
	assert.Equal(t, "This is a test task", created.Content)

	tasks, err := svc.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created, tasks[0])
}

func TestTaskService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	created, err := svc.CreateTask(ctx, "title", "content")
	require.NoError(t, err)

	tasks, err := svc.GetTasks(ctx)
	require.NoError(t, err)

	var found *domain.Task
	for _, task := range tasks {
		if task.ID == created.ID {
			found = task
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "title", found.Title)
	assert.Equal(t, "content", found.Content)
	assert.Equal(t, created.CreatedAt, found.CreatedAt)
}

func TestTaskService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	created, err := svc.CreateTask(ctx, "old title", "content")
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, created.ID, domain.Some("new title"), domain.None[string]())
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "content", updated.Content)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	updated, err = svc.UpdateTask(ctx, created.ID, domain.None[string](), domain.Some(""))
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestTaskService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	missing := uuid.New()

	_, err := svc.UpdateTask(ctx, missing, domain.Some("x"), domain.None[string]())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.DeleteTask(ctx, missing)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskService_DeleteRemovesFromListing(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	keep, err := svc.CreateTask(ctx, "keep", "a")
	require.NoError(t, err)
	gone, err := svc.CreateTask(ctx, "gone", "b")
	require.NoError(t, err)

	deleted, err := svc.DeleteTask(ctx, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, gone, deleted)

	tasks, err := svc.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	_, err = svc.DeleteTask(ctx, gone.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_EmptyStore(t *testing.T) {
	svc := newMemoryService(t)

	tasks, err := svc.GetTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskService_PassThrough(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	task := &domain.Task{ID: id, Title: "t", Content: "c", CreatedAt: time.Now().UTC()}
	storeErr := fmt.Errorf("%w: connection refused", store.ErrUnavailable)

	tests := []struct {
		name string
		call func(svc service.TaskService) (any, error)
		want string
	}{
		{
			name: "create",
			call: func(svc service.TaskService) (any, error) { return svc.CreateTask(ctx, "t", "c") },
			want: "Create",
		},
		{
			name: "get all",
			call: func(svc service.TaskService) (any, error) { return svc.GetTasks(ctx) },
			want: "GetAll",
		},
		{
			name: "update",
			call: func(svc service.TaskService) (any, error) {
				return svc.UpdateTask(ctx, id, domain.Some("t"), domain.None[string]())
			},
			want: "Update",
		},
		{
			name: "delete",
			call: func(svc service.TaskService) (any, error) { return svc.DeleteTask(ctx, id) },
			want: "Delete",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name+" returns store error unchanged", func(t *testing.T) {
			repo := &mocks.MockTaskStore{DefaultError: storeErr}
			svc, err := service.NewTaskService(repo, nil)
			require.NoError(t, err)

			_, err = tc.call(svc)
			assert.Same(t, storeErr, err)
			assert.True(t, errors.Is(err, store.ErrUnavailable))
			assert.Equal(t, []string{tc.want}, repo.Calls())
		})

		t.Run(tc.name+" returns store result", func(t *testing.T) {
			repo := &mocks.MockTaskStore{Task: task, Tasks: []*domain.Task{task}}
			svc, err := service.NewTaskService(repo, nil)
			require.NoError(t, err)

			got, err := tc.call(svc)
			require.NoError(t, err)
			switch v := got.(type) {
			case *domain.Task:
				assert.Same(t, task, v)
			case []*domain.Task:
				require.Len(t, v, 1)
				assert.Same(t, task, v[0])
			default:
				t.Fatalf("unexpected result type %T", got)
			}
		})
	}
}

func TestTaskService_ForwardsArguments(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	var gotID uuid.UUID
	var gotTitle, gotContent domain.Optional[string]
	repo := &mocks.MockTaskStore{
		UpdateFn: func(_ context.Context, id uuid.UUID, title, content domain.Optional[string]) (*domain.Task, error) {
			gotID, gotTitle, gotContent = id, title, content
			return &domain.Task{ID: id}, nil
		},
	}
	svc, err := service.NewTaskService(repo, nil)
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, id, domain.None[string](), domain.Some(""))
	require.NoError(t, err)

	assert.Equal(t, id, gotID)
	assert.False(t, gotTitle.IsSet())
	v, ok := gotContent.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)
}
