// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/siteservice"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/view"
	"github.com/starford/folio/internal/watcher"
	"github.com/starford/folio/internal/web"
)

var errConfigRequired = errors.New("config is required")

// ErrContentExists is returned by Init when the content file is already there.
var ErrContentExists = errors.New("content file already exists")

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// contentStore opens the directory holding the content file and returns the
// file name within it.
func contentStore(cfg *Config) (*storage.FS, string, error) {
	dir, name := filepath.Split(cfg.Content.Path)
	if dir == "" {
		dir = "."
	}
	store, err := storage.EnsureFS(dir)
	if err != nil {
		return nil, "", fmt.Errorf("init storage: %w", err)
	}
	return store, name, nil
}

// openService wires storage and the catalog into a loaded site service. The
// returned closer releases the catalog.
func openService(ctx context.Context, cfg *Config, logger *slog.Logger, notifier siteservice.Notifier) (*siteservice.Service, *storage.FS, func(), error) {
	store, name, err := contentStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := index.Open(cfg.Index.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}

	opts := []siteservice.Option{
		siteservice.WithStorage(store, name),
		siteservice.WithLogger(logger),
	}
	if notifier != nil {
		opts = append(opts, siteservice.WithNotifier(notifier))
	}
	svc := siteservice.New(db, opts...)

	if _, err := svc.Reload(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("load content: %w", err)
	}
	return svc, store, func() { db.Close() }, nil
}

// newHandler builds the full HTTP surface.
func newHandler(cfg *Config, svc *siteservice.Service, broker *sse.Broker, sink contact.Sink) (http.Handler, error) {
	composer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("init view: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	web.Health(r, svc)

	var events http.Handler
	if broker != nil {
		events = broker
	}
	r.Mount("/api", api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, events))

	if cfg.Assets.Dir != "" {
		assets, err := storage.EnsureFS(cfg.Assets.Dir)
		if err != nil {
			return nil, fmt.Errorf("init assets: %w", err)
		}
		ah := api.NewAssetHandler(assets)
		r.Get("/images/*", ah.Serve("images"))
		r.Get("/static/*", ah.Serve("static"))
	}

	web.NewHandler(svc, composer, sink, web.Options{
		LiveReload: broker != nil && cfg.Content.Watch,
		WASM:       cfg.Assets.WASM,
		Scroll:     cfg.Scroll,
	}).Routes(r)

	return r, nil
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.String("index_path", cfg.Index.Path),
		slog.String("assets_dir", cfg.Assets.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(0)
	defer broker.Close()

	svc, store, closeDB, err := openService(ctx, cfg, logger, broker)
	if err != nil {
		return err
	}
	defer closeDB()

	sink := app.sink
	if sink == nil {
		sink = contact.NopSink{Logger: logger}
	}

	handler, err := newHandler(cfg, svc, broker, sink)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Reload content on change.
	if cfg.Content.Watch {
		g.Go(func() error {
			err := watcher.Watch(gCtx, store.Root(), watcher.DefaultDebounce, logger, svc.HandleChange)
			if err != nil {
				logger.Warn("content watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
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

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group once the server has been asked to stop.
var errShutdown = errors.New("shutdown")

// RunMCP serves the portfolio tools over stdio. Logs go to stderr so stdout
// stays a clean protocol stream.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	svc, _, closeDB, err := openService(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer closeDB()

	logger.Info("Starting MCP server on stdio", slog.String("content_path", cfg.Content.Path))
	return mcpserver.New(svc).ServeStdio()
}

// Init writes the built-in portfolio to the configured content path so it
// can be edited, in YAML or TOML to match the path's extension. An existing file is kept unless WithForce is set.
func Init(opts ...Option) (string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return "", err
	}

	store, name, err := contentStore(app.config)
	if err != nil {
		return "", err
	}
	path := filepath.Join(store.Root(), name)
	if store.Exists(name) && !app.force {
		return path, fmt.Errorf("%w: %s", ErrContentExists, path)
	}
	data, err := content.DefaultFor(name)
	if err != nil {
		return "", err
	}
	if err := store.Write(name, data); err != nil {
		return "", fmt.Errorf("write content: %w", err)
	}
	return path, nil
}
