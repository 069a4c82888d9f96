package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHandler(t *testing.T) {
	buf, l := logger.NewTestLogger(t)
	handler := NewLogHandler(l)

	task := &domain.Task{ID: uuid.New(), Title: "secret title"}
	event := NewTaskEvent(TaskDeleted, task)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "task event", entry["msg"])
	assert.Equal(t, "task.deleted", entry["event_type"])
	assert.Equal(t, task.ID.String(), entry["task_id"])
	assert.Equal(t, "task_event_log", entry["component"])

	// Task content is not logged
	assert.NotContains(t, buf.String(), "secret title")
}

func TestLogHandler_PrefersContextLogger(t *testing.T) {
	_, fallback := logger.NewTestLogger(t)
	buf, requestLogger := logger.NewTestLogger(t)

	handler := NewLogHandler(fallback)
	ctx := logger.WithLogger(context.Background(), requestLogger.With("trace_id", "abc"))

	require.NoError(t, handler.HandleEvent(ctx, NewTaskEvent(TaskCreated, &domain.Task{ID: uuid.New()})))
	logger.AssertLogContains(t, buf, `"trace_id":"abc"`)
}
