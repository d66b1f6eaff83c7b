package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/termdeck/termdeck-api/internal/config"
	"github.com/termdeck/termdeck-api/internal/domain/srs"
	"github.com/termdeck/termdeck-api/internal/platform/postgres"
	"github.com/termdeck/termdeck-api/internal/service"
	"github.com/termdeck/termdeck-api/internal/service/auth"
	"github.com/termdeck/termdeck-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore store.UserStore
	termStore store.TermStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	srsService       srs.Service
	termService      service.TermService
	userService      service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Int("refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes))

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.termStore = postgres.NewPostgresTermStore(db, logger)

	app.srsService, err = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		Level1Days: cfg.SRS.Level1Days,
		Level2Days: cfg.SRS.Level2Days,
		Level3Days: cfg.SRS.Level3Days,
		Level4Days: cfg.SRS.Level4Days,
		Level5Days: cfg.SRS.Level5Days,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}

	app.termService, err = service.NewTermService(app.termStore, db, app.srsService, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create term service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, db, app.passwordVerifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully and
// releases resources.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
