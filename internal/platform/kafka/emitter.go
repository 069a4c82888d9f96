package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	kafkago "github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned by NewEmitter when no broker address is configured.
var ErrNoBrokers = errors.New("kafka: at least one broker is required")

// ErrNoTopic is returned by NewEmitter when the topic is empty.
var ErrNoTopic = errors.New("kafka: topic is required")

// messageWriter is the subset of *kafkago.Writer used by Emitter.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Emitter implements events.EventEmitter by writing to Kafka.
type Emitter struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

var _ events.EventEmitter = (*Emitter)(nil)

// NewEmitter creates an Emitter writing to topic on the given brokers.
func NewEmitter(brokers []string, topic string, l *slog.Logger) (*Emitter, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		return nil, ErrNoTopic
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newEmitter(writer, topic, l), nil
}

func newEmitter(w messageWriter, topic string, l *slog.Logger) *Emitter {
	if l == nil {
		l = slog.Default()
	}
	return &Emitter{
		writer: w,
		topic:  topic,
		logger: l.With("component", "kafka_emitter", "topic", topic),
	}
}

// EmitEvent implements events.EventEmitter.
func (e *Emitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode event %s: %w", event.ID, err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.TaskID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}

	log := logger.FromContextOrDefault(ctx, e.logger)
	if err := e.writer.WriteMessages(ctx, msg); err != nil {
		log.Error("failed to write kafka message",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", string(event.Type)),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("kafka: write event %s: %w", event.ID, err)
	}

	log.Debug("event written to kafka",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)))
	return nil
}

// Close flushes pending messages and closes the underlying writer.
func (e *Emitter) Close() error {
	return e.writer.Close()
}
