package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafkago.Message
	writeErr error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return w.writeErr
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestNewEmitter(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		topic   string
		wantErr error
	}{
		{name: "no brokers", brokers: nil, topic: "task-events", wantErr: ErrNoBrokers},
		{name: "no topic", brokers: []string{"localhost:9092"}, topic: "", wantErr: ErrNoTopic},
		{name: "valid", brokers: []string{"localhost:9092"}, topic: "task-events"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEmitter(tc.brokers, tc.topic, nil)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.topic, e.topic)
		})
	}
}

func TestEmitter_EmitEvent(t *testing.T) {
	w := &fakeWriter{}
	e := newEmitter(w, "task-events", nil)

	task := &domain.Task{ID: uuid.New(), Title: "title", Content: "content"}
	event := events.NewTaskEvent(events.TaskCreated, task)

	require.NoError(t, e.EmitEvent(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, task.ID.String(), string(msg.Key))
	assert.Equal(t, event.OccurredAt, msg.Time)

	var decoded events.TaskEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, events.TaskCreated, decoded.Type)
	assert.Equal(t, task.ID, decoded.TaskID)
	assert.Equal(t, "title", decoded.Task.Title)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "task.created", headers["event_type"])
	assert.Equal(t, event.ID.String(), headers["event_id"])
}

func TestEmitter_WriteFailure(t *testing.T) {
	writeErr := errors.New("dial tcp 10.0.0.9:9092: connection refused")
	w := &fakeWriter{writeErr: writeErr}
	buf, l := logger.NewTestLogger(t)
	e := newEmitter(w, "task-events", l)

	event := events.NewTaskEvent(events.TaskDeleted, &domain.Task{ID: uuid.New()})
	err := e.EmitEvent(context.Background(), event)

	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	logger.AssertLogContains(t, buf, "failed to write kafka message")
	assert.NotContains(t, buf.String(), "10.0.0.9")
}

func TestEmitter_Close(t *testing.T) {
	w := &fakeWriter{}
	e := newEmitter(w, "task-events", nil)

	require.NoError(t, e.Close())
	assert.True(t, w.closed)
}
