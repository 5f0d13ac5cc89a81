// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides Redis connection settings for cache and queue.
type RedisConfig interface {
	GetRedisURL() string
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// DashboardConfig provides settings for dashboard metric caching.
type DashboardConfig interface {
	GetDashboardCacheTTL() time.Duration
}

// ScraperConfig provides settings for the simulated scraper manager.
type ScraperConfig interface {
	GetScraperMinRunTime() time.Duration
	GetScraperMaxRunTime() time.Duration
	GetScraperBatchSize() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	DatabaseURL       string
	RedisURL          string
	AsynqQueueName    string
	AsynqConcurrency  int
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	DashboardCacheTTL time.Duration
	ScraperMinRunTime time.Duration
	ScraperMaxRunTime time.Duration
	ScraperBatchSize  int
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// DashboardConfig implementation
func (c *Config) GetDashboardCacheTTL() time.Duration { return c.DashboardCacheTTL }

// ScraperConfig implementation
func (c *Config) GetScraperMinRunTime() time.Duration { return c.ScraperMinRunTime }
func (c *Config) GetScraperMaxRunTime() time.Duration { return c.ScraperMaxRunTime }
func (c *Config) GetScraperBatchSize() int            { return c.ScraperBatchSize }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	asynqConcurrency, err := envInt("ASYNQ_CONCURRENCY", "10")
	if err != nil {
		return nil, err
	}
	dashboardCacheTTL, err := envDuration("DASHBOARD_CACHE_TTL", "30s")
	if err != nil {
		return nil, err
	}
	scraperMinRunTime, err := envDuration("SCRAPER_MIN_RUN_TIME", "10s")
	if err != nil {
		return nil, err
	}
	scraperMaxRunTime, err := envDuration("SCRAPER_MAX_RUN_TIME", "30s")
	if err != nil {
		return nil, err
	}
	scraperBatchSize, err := envInt("SCRAPER_BATCH_SIZE", "10")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  asynqConcurrency,
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		DashboardCacheTTL: dashboardCacheTTL,
		ScraperMinRunTime: scraperMinRunTime,
		ScraperMaxRunTime: scraperMaxRunTime,
		ScraperBatchSize:  scraperBatchSize,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.ScraperMinRunTime > cfg.ScraperMaxRunTime {
		return nil, fmt.Errorf("SCRAPER_MIN_RUN_TIME cannot exceed SCRAPER_MAX_RUN_TIME")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func envDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func envInt(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
