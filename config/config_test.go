package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected base url: %q", cfg.API.BaseURL)
	}
	if cfg.API.RetryMax != 3 {
		t.Errorf("unexpected retry max: %d", cfg.API.RetryMax)
	}
	if cfg.API.RetryBaseDelay != 500*time.Millisecond {
		t.Errorf("unexpected retry base delay: %v", cfg.API.RetryBaseDelay)
	}
	if cfg.Session.Store != StoreModeFile {
		t.Errorf("unexpected session store: %q", cfg.Session.Store)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://library.example.com/api/")
	t.Setenv("API_RETRY_MAX", "5")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://library.example.com/api" {
		t.Errorf("trailing slash not trimmed: %q", cfg.API.BaseURL)
	}
	if cfg.API.RetryMax != 5 {
		t.Errorf("unexpected retry max: %d", cfg.API.RetryMax)
	}
	if cfg.Session.Store != StoreModeRedis {
		t.Errorf("unexpected session store: %q", cfg.Session.Store)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
}

func TestStoreModeUnmarshalText(t *testing.T) {
	var mode StoreMode
	if err := mode.UnmarshalText([]byte("REDIS")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != StoreModeRedis {
		t.Errorf("unexpected mode: %q", mode)
	}

	if err := mode.UnmarshalText([]byte("sqlite")); err == nil {
		t.Error("expected error for invalid store mode")
	}
}

func TestSanitizeClamps(t *testing.T) {
	cfg := APIConfig{RetryMax: 99, RetryBaseDelay: -time.Second, Timeout: 0}
	cfg.Sanitize()

	if cfg.RetryMax != 10 {
		t.Errorf("retry max not clamped: %d", cfg.RetryMax)
	}
	if cfg.RetryBaseDelay != 500*time.Millisecond {
		t.Errorf("retry base delay not defaulted: %v", cfg.RetryBaseDelay)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("timeout not defaulted: %v", cfg.Timeout)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected dev mode from APP_ENV")
	}
}
