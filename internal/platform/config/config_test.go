package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("DASHBOARD_REFRESH_INTERVAL", "")

	cfg := FromEnv()
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("expected default base url, got %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.APITimeout)
	}
	if cfg.DashboardRefreshInterval != 30*time.Second {
		t.Fatalf("expected 30s refresh interval, got %v", cfg.DashboardRefreshInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://hr.example.com/api")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := FromEnv()
	if cfg.APIBaseURL != "https://hr.example.com/api" {
		t.Fatalf("unexpected base url %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.APITimeout)
	}
	if cfg.MetricsEnabled {
		t.Fatal("expected metrics disabled")
	}
	if cfg.RateLimitPerMinute != 240 {
		t.Fatalf("expected invalid int to fall back, got %d", cfg.RateLimitPerMinute)
	}
}

func TestValidateRejectsRelativeBaseURL(t *testing.T) {
	cfg := FromEnv()
	cfg.APIBaseURL = "/api"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected relative base url to be rejected")
	}
}

func TestValidateRejectsZeroTimeout(t *testing.T) {
	cfg := FromEnv()
	cfg.APIBaseURL = "http://localhost:8080/api"
	cfg.APITimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero timeout to be rejected")
	}
}

func TestFrontendDirDisabledByDefault(t *testing.T) {
	t.Setenv("FRONTEND_DIR", "")
	t.Setenv("IDEMPOTENCY_TTL", "10m")

	cfg := FromEnv()
	if cfg.FrontendDir != "" {
		t.Fatalf("expected no frontend dir, got %s", cfg.FrontendDir)
	}
	if cfg.IdempotencyTTL != 10*time.Minute {
		t.Fatalf("expected 10m idempotency ttl, got %v", cfg.IdempotencyTTL)
	}
}
