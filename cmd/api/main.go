package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadpilot_backend/internal/dashboard"
	"leadpilot_backend/internal/events"
	apphttp "leadpilot_backend/internal/http"
	"leadpilot_backend/internal/http/router"
	"leadpilot_backend/internal/leads"
	leadsrepo "leadpilot_backend/internal/leads/repository"
	"leadpilot_backend/internal/research"
	"leadpilot_backend/internal/scheduler"
	"leadpilot_backend/internal/scraper"
	"leadpilot_backend/platform/config"
	"leadpilot_backend/platform/db"
	"leadpilot_backend/platform/logger"
	"leadpilot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	cache := initRedisCache(cfg, log)
	if cache != nil {
		defer cache.Close()
	}

	completionScheduler, closeScheduler := initCompletionScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadRepo := leadsrepo.New(pool)

	leadsModule := leads.NewModule(leadRepo, eventBus, val, log)
	dashboardModule := dashboard.NewModule(leadRepo, cache, cfg.GetDashboardCacheTTL(), eventBus, log)
	scraperModule := scraper.NewModule(leadsModule.Service(), completionScheduler, eventBus, cfg, val, log)
	researchModule := research.NewModule(leadRepo, log)

	// Completion tasks must be consumed by the process that tracks the
	// runs, so the worker is embedded here rather than shipped as a
	// separate binary.
	if closeScheduler != nil {
		completionWorker, err := scheduler.NewWorker(cfg, scraperModule.Service(), log)
		if err != nil {
			log.Error("failed to initialize completion worker", "error", err)
			panic("failed to initialize completion worker: " + err.Error())
		}
		go completionWorker.Run(ctx)
		log.Info("scraper completion worker started", "queue", cfg.AsynqQueueName)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			dashboardModule,
			scraperModule,
			researchModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRedisCache builds the dashboard cache client. Caching is optional;
// without REDIS_URL the dashboard recomputes on every request.
func initRedisCache(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		log.Warn("REDIS_URL not configured; dashboard caching disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("invalid REDIS_URL; dashboard caching disabled", "error", err)
		return nil
	}

	return redis.NewClient(opt)
}

// initCompletionScheduler builds the asynq client used to schedule
// scraper-run completions. Without Redis the completion worker is not
// started either; scraper runs are still accepted but stay running
// until the expiry window.
func initCompletionScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.CompletionScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; scraper completions disabled")
		return (*scheduler.Client)(nil), nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return (*scheduler.Client)(nil), nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
