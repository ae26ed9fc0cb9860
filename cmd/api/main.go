// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the game library HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the storage driver (PostgreSQL with migrations, or memory).
//  4. Connect to Redis when configured, for distributed per-user locks.
//  5. Install tracing and metrics.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/gamelibrary/internal/api"
	"github.com/taibuivan/gamelibrary/internal/platform/config"
	"github.com/taibuivan/gamelibrary/internal/platform/constants"
	"github.com/taibuivan/gamelibrary/internal/platform/lock"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
	"github.com/taibuivan/gamelibrary/internal/platform/migration"
	pgstore "github.com/taibuivan/gamelibrary/internal/platform/postgres"
	redisstore "github.com/taibuivan/gamelibrary/internal/platform/redis"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/platform/telemetry"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	var (
		repos  api.Repositories
		health = api.HealthDependencies{StoreName: cfg.StorageDriver}
	)

	if cfg.UsesPostgres() {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log, pgstore.Options{TraceQueries: cfg.Debug})
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		repos = api.PostgresRepositories(pool)
		health.CheckStore = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
	} else {
		db := memstore.New()
		repos = api.MemoryRepositories(db)
		health.CheckStore = func(context.Context) error { return db.Ping() }
		log.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))
	}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer closeRedis(log, rdb)

		locker = redisstore.NewLocker(rdb, log)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 5. Observability ──────────────────────────────────────────────────
	shutdownTracing, err := telemetry.Setup(startupCtx, cfg.OTelEndpoint, constants.AppName, constants.AppVersion)
	must(log, err, "initialize tracing")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error("tracing shutdown error", slog.Any("error", err))
		}
	}()

	appMetrics := metrics.New()

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	must(log, err, "initialize jwt service")

	handlers := api.NewDomainHandlers(repos, tokens, locker, appMetrics, log)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(health, log)

	// Background workers stop with the server.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	rateLimiter := middleware.NewIPRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go rateLimiter.Run(workerCtx)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, api.Infrastructure{
		Verifier:    tokens,
		RateLimiter: rateLimiter,
		Metrics:     appMetrics,
	}, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

func closeRedis(log *slog.Logger, rdb *goredis.Client) {
	log.Info("closing redis client")
	if err := rdb.Close(); err != nil {
		log.Error("redis close error", slog.Any("error", err))
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
