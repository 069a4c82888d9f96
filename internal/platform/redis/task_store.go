package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// TasksKey is the hash holding every task.
const TasksKey = "tasks"

// DefaultMaxRetries bounds how often Update and Delete retry after a concurrent
// write to the same task.
const DefaultMaxRetries = 5

// maxCreateAttempts bounds id regeneration on HSETNX collisions.
const maxCreateAttempts = 3

// TaskStore implements store.TaskStore on a Redis hash keyed by task id.
// Updates and deletes are compare-and-swap on a single field, so only
// writes to the same task contend.
type TaskStore struct {
	client     goredis.UniversalClient
	key        string
	maxRetries int
	now        func() time.Time
	logger     *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore using client.
// If logger is nil, a default logger will be used.
func NewTaskStore(client goredis.UniversalClient, logger *slog.Logger) *TaskStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("redis client cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		client:     client,
		key:        TasksKey,
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "redis_task_store")),
	}
}

// NewClient parses a redis:// URL and returns a connected client.
// The connection is verified with PING before returning.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, title, content string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := &domain.Task{
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		task.ID = uuid.New()

		data, err := encodeTask(task)
		if err != nil {
			return nil, err
		}

		created, err := s.client.HSetNX(ctx, s.key, task.ID.String(), data).Result()
		if err != nil {
			log.Error("failed to create task", slog.String("error", redact.Error(err)))
			return nil, MapError(err)
		}
		if created {
			log.Info("task created", slog.String("task_id", task.ID.String()))
			return task, nil
		}

		log.Warn("task id collision, retrying", slog.String("task_id", task.ID.String()))
	}

	return nil, store.NewStoreError("task", "create", store.ErrConflict, errors.New("could not allocate a unique id"))
}

// GetAll implements store.TaskStore.
// Tasks are ordered by creation time, then by id.
func (s *TaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	tasks := make([]*domain.Task, 0, len(values))
	for field, value := range values {
		task, err := decodeTask(value)
		if err != nil {
			log.Error("failed to decode task",
				slog.String("task_id", field),
				slog.String("error", redact.Error(err)))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	domain.SortTasks(tasks)
	return tasks, nil
}

// Update implements store.TaskStore.
// An update with no fields set returns the current task without writing.
func (s *TaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.withRetry(ctx, "update", id, func() (bool, error) {
		task, raw, err := s.load(ctx, id)
		if err != nil {
			return false, err
		}

		if !title.IsSet() && !content.IsSet() {
			updated = task
			return true, nil
		}

		task.Merge(title, content)
		data, err := encodeTask(task)
		if err != nil {
			return false, err
		}

		swapped, err := s.compareAndSwap(ctx, id, raw, data)
		if swapped {
			updated = task
		}
		return swapped, err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var deleted *domain.Task

	err := s.withRetry(ctx, "delete", id, func() (bool, error) {
		task, raw, err := s.load(ctx, id)
		if err != nil {
			return false, err
		}

		swapped, err := s.compareAndSwap(ctx, id, raw, "")
		if swapped {
			deleted = task
		}
		return swapped, err
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// Results of compareAndSwapScript.
const (
	swapMissing = -1
	swapStale   = 0
	swapApplied = 1
)

// compareAndSwapScript replaces (or, with an empty ARGV[3], deletes) one field
// of the hash only while it still holds ARGV[2]. Writes to other fields never
// interfere.
var compareAndSwapScript = goredis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
if not current then
	return -1
end
if current ~= ARGV[2] then
	return 0
end
if ARGV[3] == '' then
	redis.call('HDEL', KEYS[1], ARGV[1])
else
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[3])
end
return 1
`)

// compareAndSwap writes next for id if the stored value is still expected.
// It reports false when another client changed the task in between.
func (s *TaskStore) compareAndSwap(ctx context.Context, id uuid.UUID, expected, next string) (bool, error) {
	result, err := compareAndSwapScript.Run(ctx, s.client, []string{s.key}, id.String(), expected, next).Int()
	if err != nil {
		return false, err
	}

	switch result {
	case swapApplied:
		return true, nil
	case swapMissing:
		return false, store.ErrTaskNotFound
	default:
		return false, nil
	}
}

// withRetry runs attempt until it reports success, fails, or the retry budget
// is spent. Only concurrent writes to the same task cause a retry.
func (s *TaskStore) withRetry(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	attempt func() (bool, error),
) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("operation", operation),
		slog.String("task_id", id.String()))

	for i := 0; i < s.maxRetries; i++ {
		done, err := attempt()
		switch {
		case err != nil && errors.Is(err, store.ErrNotFound):
			return err
		case err != nil:
			log.Error("task "+operation+" failed", slog.String("error", redact.Error(err)))
			return MapError(err)
		case done:
			log.Info("task " + operation + " committed")
			return nil
		}
		log.Debug("task changed concurrently, retrying", slog.Int("attempt", i+1))
	}

	log.Warn("task "+operation+" gave up after concurrent modifications",
		slog.Int("attempts", s.maxRetries))
	return store.NewStoreError("task", operation, store.ErrConflict,
		fmt.Errorf("task %s modified concurrently %d times", id, s.maxRetries))
}

// load reads and decodes a task, returning the raw stored value alongside it.
func (s *TaskStore) load(ctx context.Context, id uuid.UUID) (*domain.Task, string, error) {
	value, err := s.client.HGet(ctx, s.key, id.String()).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, "", store.ErrTaskNotFound
	}
	if err != nil {
		return nil, "", err
	}

	task, err := decodeTask(value)
	if err != nil {
		return nil, "", err
	}
	return task, value, nil
}

func encodeTask(task *domain.Task) (string, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("%w: encode task: %v", store.ErrInvalidEntity, err)
	}
	return string(data), nil
}

func decodeTask(value string) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal([]byte(value), &task); err != nil {
		return nil, fmt.Errorf("%w: decode task: %v", store.ErrInvalidEntity, err)
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}
