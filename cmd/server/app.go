package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/kafka"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/platform/redis"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is set only for the postgres backend
	db *sql.DB

	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
	taskService  service.TaskService

	// closers run in reverse order during cleanup
	closers []func() error
}

// newApplication creates a new application instance with all dependencies initialized.
// The task store backend is chosen by cfg.Database.Backend and wrapped so that
// every successful mutation publishes a lifecycle event.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	baseStore, err := app.setupTaskStore(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.eventEmitter, err = app.setupEventEmitter()
	if err != nil {
		app.cleanup()
		return nil, err
	}

	app.taskStore = events.NewPublishingTaskStore(baseStore, app.eventEmitter, logger)

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully", "backend", cfg.Database.Backend)
	return app, nil
}

// setupTaskStore connects to the configured backend and returns its TaskStore.
func (app *application) setupTaskStore(ctx context.Context) (store.TaskStore, error) {
	cfg := app.config.Database

	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := setupAppDatabase(ctx, cfg, app.logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.closers = append(app.closers, db.Close)

		if cfg.AutoMigrate {
			if err := runMigrations(ctx, db, "up", app.logger); err != nil {
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		timeout := time.Duration(cfg.AcquireTimeoutSeconds) * time.Second
		return postgres.NewPostgresTaskStore(db, app.logger).WithTimeout(timeout), nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, app.config.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.closers = append(app.closers, client.Close)
		app.logger.Info("Redis connection established")
		return redis.NewTaskStore(client, app.logger), nil

	case config.BackendMemory:
		app.logger.Warn("Using in-memory task store; tasks are lost on restart")
		return memory.NewTaskStore(memory.WithLogger(app.logger)), nil

	default:
		return nil, fmt.Errorf("unsupported database backend: %q", cfg.Backend)
	}
}

// setupEventEmitter returns the Kafka emitter when brokers are configured,
// otherwise an in-process emitter that logs every event.
func (app *application) setupEventEmitter() (events.EventEmitter, error) {
	cfg := app.config.Events

	if len(cfg.KafkaBrokers) > 0 {
		emitter, err := kafka.NewEmitter(cfg.KafkaBrokers, cfg.KafkaTopic, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka emitter: %w", err)
		}
		app.closers = append(app.closers, emitter.Close)
		app.logger.Info("Publishing task events to kafka", "topic", cfg.KafkaTopic)
		return emitter, nil
	}

	emitter := events.NewDispatcher(app.logger)
	emitter.Subscribe(events.NewLogHandler(app.logger))
	return emitter, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("Error closing resource", slog.String("error", redact.Error(err)))
		}
	}
	app.closers = nil

	app.logger.Info("Application shutdown completed")
}
