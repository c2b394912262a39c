// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the address book HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Select the cache and reset-token backends (Redis, or in-process).
//  5. Build the JWT service and the mail sender.
//  6. Wire repositories and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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
	"github.com/resendlabs/resend-go"

	"github.com/taibuivan/addressbook/internal/addressbook"
	"github.com/taibuivan/addressbook/internal/api"
	"github.com/taibuivan/addressbook/internal/platform/cache"
	"github.com/taibuivan/addressbook/internal/platform/config"
	"github.com/taibuivan/addressbook/internal/platform/constants"
	"github.com/taibuivan/addressbook/internal/platform/mail"
	"github.com/taibuivan/addressbook/internal/platform/middleware"
	"github.com/taibuivan/addressbook/internal/platform/migration"
	pgstore "github.com/taibuivan/addressbook/internal/platform/postgres"
	redisstore "github.com/taibuivan/addressbook/internal/platform/redis"
	"github.com/taibuivan/addressbook/internal/platform/sec"
	"github.com/taibuivan/addressbook/internal/users/account"
	"github.com/taibuivan/addressbook/internal/users/reset"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.UsesRedis()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. Cache & Reset Tokens ───────────────────────────────────────────
	var (
		cacheStore   cache.Store
		resetBackend reset.Backend
	)

	if cfg.UsesRedis() {
		var rdb *goredis.Client
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		cacheStore = cache.NewRedisStore(rdb)
		resetBackend = reset.NewRedisBackend(rdb)
	} else {
		log.Warn("redis_disabled_using_in_process_cache")
		cacheStore = cache.NewMemoryStore(cfg.CacheCapacity, cfg.CacheTTL)
		resetBackend = reset.NewMemoryBackend(cfg.CacheCapacity, constants.ResetTokenTTL)
	}

	accessCache := cache.New(cacheStore, cfg.CacheTTL, cfg.CacheOpTimeout, log)

	// ── 5. Identity & Mail ────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer, constants.SessionTokenTTL)
	must(log, err, "initialize jwt service")

	var mailer mail.Sender
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendSender(resend.NewClient(cfg.ResendAPIKey), cfg.MailFrom, cfg.MailFromName, log)
	} else {
		log.Warn("resend_disabled_logging_mail")
		mailer = mail.NewLogSender(log)
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	accounts := account.NewRepository(account.Dependencies{
		Store:   account.NewPostgresStore(pool),
		Cache:   accessCache,
		Hasher:  sec.NewPasswordHasher(cfg.BcryptCost),
		Tokens:  jwtSvc,
		Resets:  reset.NewService(resetBackend, constants.ResetTokenTTL),
		Mailer:  mailer,
		BaseURL: cfg.AppBaseURL,
		Logger:  log,
	})
	contacts := addressbook.NewRepository(addressbook.NewPostgresStore(pool), accessCache, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    accessCache.Ping,
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(rootCtx)

	server := api.NewServer(cfg, log, jwtSvc, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accounts),
		Contacts:  addressbook.NewHandler(contacts, accounts),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	rootCancel()

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the process-wide JSON logger and installs it as default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only startup wiring uses it.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
