// Package main is the entry point for the TheMargin API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"themargin/internal/account"
	"themargin/internal/auth"
	"themargin/internal/blog"
	"themargin/internal/cache"
	"themargin/internal/config"
	"themargin/internal/database"
	"themargin/internal/handlers"
	"themargin/internal/metrics"
	"themargin/internal/router"
	"themargin/internal/session"
	"themargin/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	slog.SetDefault(newLogger(os.Stdout, cfg.Env, cfg.LogLevel))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"session_ttl", cfg.SessionTTL.String(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (session records).
	valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, 0)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	sessionStore := session.NewStore(valkeyClient, tokens, !cfg.IsDev())

	// Initialize data stores and services.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db, store.WithSeedOnEmpty(cfg.SeedOnEmpty))

	accounts := account.NewService(userStore, postStore, auth.NewHasher(cfg.BcryptCost))
	blogs := blog.NewService(postStore)

	if cfg.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err := blogs.Bootstrap(ctx)
		cancel()
		if err != nil {
			slog.Error("failed to seed example posts", "error", err)
			os.Exit(1)
		}
	}

	// Export connection pool gauges.
	poolStats := metrics.NewPoolStatsCollector(db)
	poolStats.Start(15 * time.Second)
	defer poolStats.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, router.Handlers{
		Auth:  handlers.NewAuth(accounts, sessionStore),
		Blogs: handlers.NewBlogs(blogs),
		Users: handlers.NewUsers(accounts, blogs),
		Health: handlers.NewHealth(map[string]handlers.Pinger{
			"postgres": db,
			"valkey":   cache.Pinger{Client: valkeyClient},
		}),
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(w io.Writer, env, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if env == "development" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
