package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/leads_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" || cfg.AsynqQueueName != "default" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CORSAllowCreds {
		t.Fatal("credentials must default to disabled")
	}
	if cfg.DashboardCacheTTL != 30*time.Second {
		t.Fatalf("cache ttl = %v", cfg.DashboardCacheTTL)
	}
}

func TestLoadWildcardOriginWithDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("wildcard origin with default env must load: %v", err)
	}
	if !cfg.CORSAllowAll {
		t.Fatal("wildcard origin did not enable allow-all")
	}
}

func TestLoadRejectsCredentialsWithAllowAll(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ALLOW_ALL", "true")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("allow-all with credentials: want error")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPER_MAX_RUN_TIME", "30")

	_, err := Load()
	if err == nil {
		t.Fatal("unitless duration: want error")
	}
	if !strings.Contains(err.Error(), "SCRAPER_MAX_RUN_TIME") {
		t.Fatalf("error does not name the variable: %v", err)
	}
}

func TestLoadRejectsInvalidInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPER_BATCH_SIZE", "lots")

	_, err := Load()
	if err == nil {
		t.Fatal("non-numeric batch size: want error")
	}
	if !strings.Contains(err.Error(), "SCRAPER_BATCH_SIZE") {
		t.Fatalf("error does not name the variable: %v", err)
	}
}

func TestLoadRejectsMinAboveMax(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCRAPER_MIN_RUN_TIME", "1m")
	t.Setenv("SCRAPER_MAX_RUN_TIME", "30s")

	if _, err := Load(); err == nil {
		t.Fatal("min above max: want error")
	}
}
