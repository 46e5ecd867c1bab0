// Package main is the entry point for the ghosthq server.
//
// ghosthq manages on-disk writing project workspaces (books, scripts,
// blog posts) as plain files plus a per-project manifest that keeps item
// IDs stable across renames and moves. It exposes a JSON HTTP API for
// scanning project structures and mutating them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lagsuite/ghosthq/internal/server"
	"github.com/lagsuite/ghosthq/internal/server/ratelimit"
	"github.com/lagsuite/ghosthq/internal/storage"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const version = "0.1.0"

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "ghosthq: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	httpAddr := flag.String("http", "localhost:8080", "Address to listen on (e.g., localhost:8080, :8080)")
	projectsRoot := flag.String("projects-root", "./GHOST_Proyectos", "Root directory holding the project workspaces")
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	ll := &slog.LevelVar{}
	if err := ll.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	// Skip timestamps when running under systemd (it adds its own).
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			val := a.Value.Any()
			skip := false
			switch t := val.(type) {
			case string:
				skip = t == ""
			case bool:
				skip = !t
			case uint64:
				skip = t == 0
			case int64:
				skip = t == 0
			case float64:
				skip = t == 0
			case time.Time:
				skip = t.IsZero()
			case time.Duration:
				skip = t == 0
			case nil:
				skip = true
			}
			if skip {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(*projectsRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create projects root: %w", err)
	}

	cfg, err := storage.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	resolver, err := storage.NewResolver(*projectsRoot)
	if err != nil {
		return fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	versions, err := storage.NewVersionService(resolver.Root())
	if err != nil {
		return fmt.Errorf("failed to initialize version service: %w", err)
	}

	cache := storage.NewCache(0)
	svc := storage.NewService(resolver, cfg, cache, versions)
	progress := storage.NewProgressStore()

	watcher, err := storage.NewWatcher(resolver.Root(), cache)
	if err != nil {
		slog.WarnContext(ctx, "File watcher unavailable, structure cache may serve stale results", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	limiter := ratelimit.NewLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second, cfg.RateLimit.Burst)
	defer limiter.Close()

	httpServer := &http.Server{
		Addr:              *httpAddr,
		Handler:           server.NewRouter(svc, versions, progress, limiter, version),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Starting server", "addr", *httpAddr, "projectsRoot", resolver.Root(), "version", version)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.InfoContext(ctx, "Server stopped")
	}
	return nil
}
