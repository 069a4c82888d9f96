// Package events publishes task lifecycle events.
//
// Every successful mutation of a task produces a TaskEvent: task.created,
// task.updated or task.deleted. PublishingTaskStore wraps any store.TaskStore
// and emits the matching event after the wrapped store reports success.
// Where events go is decided by the EventEmitter it is given:
//
//   - Dispatcher delivers them in-process to subscribed EventHandlers,
//     optionally filtered by event type
//     (LogHandler writes each event to the structured log)
//   - kafka.Emitter (internal/platform/kafka) writes them to a Kafka topic
//
// Emission is best-effort. A failed emit is logged and never changes the
// result of the store operation that triggered it.
package events
