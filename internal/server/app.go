// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/legalchicks/lcen-portal/internal/cryptox"
	"github.com/legalchicks/lcen-portal/internal/logging"
	"github.com/legalchicks/lcen-portal/internal/server/audit"
	"github.com/legalchicks/lcen-portal/internal/server/auth"
	"github.com/legalchicks/lcen-portal/internal/server/config"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/repomanager"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/users"
	"github.com/legalchicks/lcen-portal/internal/server/rest"
	"github.com/legalchicks/lcen-portal/internal/server/services"
)

// logOutput is where the JSON log goes.
var logOutput io.Writer = os.Stdout

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage repomanager.RepositoryManager
	http    *rest.Server
}

// NewApp builds every component. It fails when the configuration is
// invalid, storage cannot be reached or migrations fail.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	codec, err := auth.NewTokenCodec(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	hasher, err := cryptox.NewHasher(c.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	storage, err := repomanager.New(ctx, c.StorageBackend, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := storage.RunMigrations(ctx); err != nil {
		_ = storage.Close()
		return nil, err
	}

	if c.SeedDemoMembers {
		n, err := storage.SeedUsers(ctx, hasher, users.DefaultSeed)
		if err != nil {
			_ = storage.Close()
			return nil, err
		}
		logger.Info(ctx, "demo members seeded", "inserted", n)
	}

	svc := rest.Services{
		Auth:      services.NewAuthService(storage.Users(), codec, hasher, audit.NewLogSink(logger), logger),
		Profiles:  services.NewProfileService(storage.Users()),
		Business:  services.NewBusinessService(storage.Business()),
		Analytics: services.NewAnalyticsService(nil),
		Codec:     codec,
	}

	httpServer := rest.NewServer(rest.Options{
		Address:           c.EndpointAddrHTTP,
		CORSOrigins:       c.CORSOrigins,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		ShutdownTimeout:   c.ShutdownTimeout,
	}, svc, logger)

	return &App{config: c, logger: logger, storage: storage, http: httpServer}, nil
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	err := app.http.Run(ctx)

	if cerr := app.storage.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
