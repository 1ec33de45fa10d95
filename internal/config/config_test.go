package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("TOKEN_PATH", "/tmp/tourney-admin-test/token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected default APP_ENV=dev, got %q", cfg.AppEnv)
	}
	if cfg.APIBaseURL != "http://localhost:5001/api/admin" {
		t.Fatalf("unexpected default API_BASE_URL: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 20*time.Second {
		t.Fatalf("unexpected default API_TIMEOUT: %s", cfg.APITimeout)
	}
	if !cfg.CircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
	if cfg.CircuitFailureCount != 5 {
		t.Fatalf("unexpected default failure count: %d", cfg.CircuitFailureCount)
	}
	if cfg.ReferenceCacheTTL != 60*time.Second {
		t.Fatalf("unexpected default reference cache ttl: %s", cfg.ReferenceCacheTTL)
	}
	if cfg.ExportWorkers != 2 {
		t.Fatalf("unexpected default export workers: %d", cfg.ExportWorkers)
	}
}

func TestLoad_BaseURLTrailingSlashTrimmed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("API_BASE_URL", "https://api.example.com/api/admin///")
	t.Setenv("TOKEN_PATH", "/tmp/tourney-admin-test/token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com/api/admin" {
		t.Fatalf("unexpected API_BASE_URL: %q", cfg.APIBaseURL)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("TOKEN_PATH", "/tmp/tourney-admin-test/token")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_TimeoutValidation(t *testing.T) {
	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("API_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid API_TIMEOUT")
		}
	})

	t.Run("non-positive duration", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("API_TIMEOUT", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for API_TIMEOUT=0s")
		}
	})
}

func TestLoad_CircuitConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TOKEN_PATH", "/tmp/tourney-admin-test/token")

	t.Run("disabled", func(t *testing.T) {
		t.Setenv("API_CIRCUIT_ENABLED", "false")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CircuitEnabled {
			t.Fatalf("expected circuit breaker disabled")
		}
	})

	t.Run("invalid failure count", func(t *testing.T) {
		t.Setenv("API_CIRCUIT_ENABLED", "true")
		t.Setenv("API_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for API_CIRCUIT_FAILURE_COUNT=0")
		}
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("API_CIRCUIT_ENABLED", "true")
		t.Setenv("API_CIRCUIT_FAILURE_COUNT", "3")
		t.Setenv("API_CIRCUIT_OPEN_TIMEOUT", "30s")
		t.Setenv("API_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CircuitFailureCount != 3 {
			t.Fatalf("unexpected failure count: %d", cfg.CircuitFailureCount)
		}
		if cfg.CircuitOpenTimeout != 30*time.Second {
			t.Fatalf("unexpected open timeout: %s", cfg.CircuitOpenTimeout)
		}
		if cfg.CircuitHalfOpenMaxReq != 1 {
			t.Fatalf("unexpected half-open max: %d", cfg.CircuitHalfOpenMaxReq)
		}
	})
}

func TestLoad_SingleflightParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TOKEN_PATH", "/tmp/tourney-admin-test/token")

	t.Run("enabled by default", func(t *testing.T) {
		t.Setenv("API_SINGLEFLIGHT_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SingleflightEnabled {
			t.Fatalf("expected read dedup enabled by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("API_SINGLEFLIGHT_ENABLED", "maybe")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid API_SINGLEFLIGHT_ENABLED")
		}
	})
}

func TestLoad_ExportWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TOKEN_PATH", "/tmp/tourney-admin-test/token")
	t.Setenv("EXPORT_WORKERS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid EXPORT_WORKERS")
	}
}
