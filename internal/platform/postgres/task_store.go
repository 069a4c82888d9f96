package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

const taskColumns = "id, title, content, created_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
// The database assigns id and created_at through column defaults.
type PostgresTaskStore struct {
	db      store.DBTX
	logger  *slog.Logger
	timeout time.Duration
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// WithTimeout returns a copy of the store that bounds every operation,
// including waiting for a pooled connection, by d. Zero disables the bound.
func (s *PostgresTaskStore) WithTimeout(d time.Duration) *PostgresTaskStore {
	c := *s
	c.timeout = d
	return &c
}

// withDeadline applies the configured operation timeout to ctx.
func (s *PostgresTaskStore) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, title, content string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	query := `
		INSERT INTO tasks (title, content)
		VALUES ($1, $2)
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, title, content))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("generated task id already exists", slog.String("error", redact.Error(err)))
		} else {
			log.Error("failed to create task", slog.String("error", redact.Error(err)))
		}
		return nil, MapError(err)
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// GetAll implements store.TaskStore.GetAll
// Tasks are ordered by creation time, with the id as a tie-breaker.
func (s *PostgresTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(cerr)))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", redact.Error(err)))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	log.Debug("tasks retrieved", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// Unset fields are bound as NULL so COALESCE keeps the stored value.
// Returns store.ErrTaskNotFound if no row matches id.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	title, content domain.Optional[string],
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	query := `
		UPDATE tasks
		SET title = COALESCE($1, title),
			content = COALESCE($2, content)
		WHERE id = $3
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, nullString(title), nullString(content), id))
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to update task",
				slog.String("error", redact.Error(err)),
				slog.String("task_id", id.String()))
		}
		return nil, mapTaskError(err)
	}

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.Bool("title_set", title.IsSet()),
		slog.Bool("content_set", content.IsSet()))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no row matches id.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	query := `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to delete task",
				slog.String("error", redact.Error(err)),
				slog.String("task_id", id.String()))
		}
		return nil, mapTaskError(err)
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return task, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(&task.ID, &task.Title, &task.Content, &task.CreatedAt); err != nil {
		return nil, err
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}

func nullString(o domain.Optional[string]) sql.NullString {
	v, ok := o.Get()
	return sql.NullString{String: v, Valid: ok}
}
