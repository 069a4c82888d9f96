package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// subscription pairs a handler with the event types it wants.
// An empty type set matches every event.
type subscription struct {
	handler EventHandler
	types   map[TaskEventType]struct{}
}

func (s subscription) matches(t TaskEventType) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Dispatcher is an EventEmitter that delivers events to subscribed handlers
// in the calling goroutine, in subscription order.
type Dispatcher struct {
	mu            sync.RWMutex
	subscriptions []subscription
	logger        *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with no subscribers.
// If l is nil, the default logger is used.
func NewDispatcher(l *slog.Logger) *Dispatcher {
	if l == nil {
		l = slog.Default()
	}
	return &Dispatcher{
		logger: l.With(slog.String("component", "task_event_dispatcher")),
	}
}

// Subscribe registers handler for the given event types, or for every type
// when none are given.
func (d *Dispatcher) Subscribe(handler EventHandler, types ...TaskEventType) {
	sub := subscription{handler: handler}
	if len(types) > 0 {
		sub.types = make(map[TaskEventType]struct{}, len(types))
		for _, t := range types {
			sub.types[t] = struct{}{}
		}
	}

	d.mu.Lock()
	d.subscriptions = append(d.subscriptions, sub)
	count := len(d.subscriptions)
	d.mu.Unlock()

	d.logger.Debug("event handler subscribed",
		slog.Int("subscriber_count", count),
		slog.Int("event_type_filter", len(types)))
}

// EmitEvent delivers event to every matching subscriber. A failing handler
// does not stop delivery to the rest; the first failure is returned.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, d.logger).With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)))

	d.mu.RLock()
	subs := d.subscriptions
	d.mu.RUnlock()

	var firstErr error
	delivered := 0
	for i, sub := range subs {
		if !sub.matches(event.Type) {
			continue
		}
		delivered++
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed",
				slog.Int("subscriber_index", i),
				slog.String("error", redact.Error(err)))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if delivered == 0 {
		log.Debug("no subscribers for event")
	}
	return firstErr
}
