package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "script error", err: errors.New("ERR Error running script"), expected: store.ErrUnavailable},
		{name: "already conflict", err: store.NewStoreError("task", "update", store.ErrConflict, errors.New("busy")), expected: store.ErrConflict},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"), expected: store.ErrUnavailable},
		{name: "cancelled context", err: context.Canceled, expected: store.ErrUnavailable},
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: store.ErrUnavailable},
		{name: "already not found", err: store.ErrTaskNotFound, expected: store.ErrNotFound},
		{name: "already invalid", err: fmt.Errorf("%w: bad", store.ErrInvalidEntity), expected: store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.expected)
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestMapError_KeepsClassifiedErrorIdentity(t *testing.T) {
	assert.Same(t, store.ErrTaskNotFound, MapError(store.ErrTaskNotFound))
}

func TestEncodeDecodeTask(t *testing.T) {
	task := &domain.Task{
		ID:        uuid.New(),
		Title:     "title",
		Content:   "",
		CreatedAt: time.Date(2024, 2, 3, 4, 5, 6, 7000, time.UTC),
	}

	data, err := encodeTask(task)
	require.NoError(t, err)

	decoded, err := decodeTask(data)
	require.NoError(t, err)
	assert.Equal(t, task, decoded)
}

func TestDecodeTask_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "not json"},
		{name: "missing id", value: `{"title":"t","content":"c","created_at":"2024-01-01T00:00:00Z"}`},
		{name: "missing created_at", value: `{"id":"` + uuid.NewString() + `","title":"t","content":"c"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeTask(tc.value)
			assert.ErrorIs(t, err, store.ErrInvalidEntity)
		})
	}
}

func TestNewTaskStore(t *testing.T) {
	assert.Panics(t, func() { NewTaskStore(nil, nil) })

	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	defer func() { _ = client.Close() }()

	s := NewTaskStore(client, nil)
	assert.Equal(t, TasksKey, s.key)
	assert.Equal(t, DefaultMaxRetries, s.maxRetries)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-redis-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}
