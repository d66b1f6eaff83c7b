// Package main is the entry point of the TermDeck API server. It serves the
// HTTP API and runs database migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/termdeck/termdeck-api/internal/config"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
)

// defaultMigrationsDir is where -create-migration writes new files, relative
// to the repository root.
const defaultMigrationsDir = "internal/platform/postgres/migrations"

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command and exit: up, down, status, reset or version")
	createMigration := flag.String("create-migration", "",
		"create a new SQL migration file with the given name and exit")
	migrationsDir := flag.String("migrations-dir", defaultMigrationsDir,
		"directory -create-migration writes to")
	configFile := flag.String("config", "", "path to a config file (default: ./config.yaml if present)")
	flag.Parse()

	if *createMigration != "" {
		if err := createMigrationFile(*migrationsDir, *createMigration); err != nil {
			slog.Error("failed to create migration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	cfg, log, err := initializeApp(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, log, *migrateCmd); err != nil {
			log.Error("migration failed",
				slog.String("command", *migrateCmd),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up logging.
func initializeApp(configFile string) (*config.Config, *slog.Logger, error) {
	var opts []config.Option
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("cors_origins", len(cfg.CORS.AllowedOrigins)))

	return cfg, log, nil
}

// serve connects to the database, wires the application and runs the HTTP
// server until ctx is canceled.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
