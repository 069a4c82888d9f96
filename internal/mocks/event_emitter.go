package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/events"
)

// MockEventEmitter implements events.EventEmitter for testing.
// It records every emitted event and returns EmitError (or the result of
// EmitEventFn when set).
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.TaskEvent) error
	EmitError   error

	mu     sync.Mutex
	events []*events.TaskEvent
}

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return m.EmitError
}

// Events returns the events emitted so far.
func (m *MockEventEmitter) Events() []*events.TaskEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.TaskEvent, len(m.events))
	copy(out, m.events)
	return out
}
