// Package kafka publishes task lifecycle events to a Kafka topic using
// github.com/segmentio/kafka-go.
//
// Emitter implements events.EventEmitter. Each event becomes one message
// keyed by the task ID, so all events for a task land on the same partition
// and keep their order; the value is the JSON-encoded event.
package kafka
