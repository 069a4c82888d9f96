// Package main implements the entry point for the task API server.
//
// Usage:
//
//	server                 start the HTTP server
//	server -migrate up     apply pending migrations and exit
//
// Supported migration commands: up, down, reset, status, version.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/task-api/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a database migration command (up|down|reset|status|version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("task API exited with error", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, and either executes a migration
// command or serves HTTP until SIGINT/SIGTERM.
func run(migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrateCmd != "" {
		db, err := setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := runMigrations(ctx, db, migrateCmd, logger); err != nil {
			return fmt.Errorf("migration %q failed: %w", migrateCmd, err)
		}
		return nil
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
