// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/mise/internal/importer"
	"github.com/starford/mise/internal/library"
	"github.com/starford/mise/internal/recipeservice"
	"github.com/starford/mise/internal/storage"
	"github.com/starford/mise/internal/textdetect"
)

// App bundles the wired runtime pieces behind the CLI commands.
type App struct {
	Config   *Config
	Logger   *slog.Logger
	Store    storage.Provider
	DB       *library.DB
	Importer *importer.Importer
	Service  *recipeservice.Service

	pantryRoot string
}

// Setup builds the application from configuration: logger, pantry storage,
// SQLite library, and the recipe service on top.
func Setup(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("pantry_path", cfg.Pantry.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure pantry directory exists.
	if err := os.MkdirAll(cfg.Pantry.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create pantry dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Pantry.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := library.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init library: %w", err)
	}

	imp := importer.New(textdetect.New())
	svc := recipeservice.NewService(store, db, imp, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		DB:         db,
		Importer:   imp,
		Service:    svc,
		pantryRoot: cfg.Pantry.Path,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.DB.Close()
}

// Run starts watch mode: an initial pantry sync followed by an fsnotify
// watcher that keeps the library current until a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	a, err := Setup(app.config)
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.Logger
	imp := a.Importer

	// Run initial sync.
	if err := library.Sync(a.DB, a.Store, imp, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gCtx)
	defer stopWatch()

	// Start file watcher.
	g.Go(func() error {
		return library.Watch(watchCtx, a.DB, a.Store, imp, a.pantryRoot, logger, app.onEvent)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}
		stopWatch()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watch mode stopped")
	return nil
}
