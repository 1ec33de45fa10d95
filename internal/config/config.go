package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fieldside/tourney-admin/internal/platform/logging"
)

// Config stores runtime configuration for the admin console.
type Config struct {
	AppEnv                string
	ServiceName           string
	ServiceVersion        string
	APIBaseURL            string
	APITimeout            time.Duration
	TokenPath             string
	AdminEmail            string
	AdminPassword         string
	SingleflightEnabled   bool
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
	ReferenceCacheTTL     time.Duration
	ExportWorkers         int
	UptraceEnabled        bool
	UptraceDSN            string
	LogLevel              logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	apiTimeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_TIMEOUT: %w", err)
	}
	if apiTimeout <= 0 {
		return Config{}, fmt.Errorf("API_TIMEOUT must be > 0")
	}

	singleflightEnabled, err := strconv.ParseBool(getEnv("API_SINGLEFLIGHT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_SINGLEFLIGHT_ENABLED: %w", err)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	referenceCacheTTL, err := time.ParseDuration(getEnv("REFERENCE_CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFERENCE_CACHE_TTL: %w", err)
	}
	if referenceCacheTTL <= 0 {
		return Config{}, fmt.Errorf("REFERENCE_CACHE_TTL must be > 0")
	}

	exportWorkers, err := getEnvAsInt("EXPORT_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse EXPORT_WORKERS: %w", err)
	}
	if exportWorkers < 1 {
		return Config{}, fmt.Errorf("EXPORT_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	tokenPath := strings.TrimSpace(getEnv("TOKEN_PATH", ""))
	if tokenPath == "" {
		tokenPath, err = defaultTokenPath()
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "tourney-admin"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		APIBaseURL:            strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5001/api/admin"), "/"),
		APITimeout:            apiTimeout,
		TokenPath:             tokenPath,
		AdminEmail:            strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		AdminPassword:         getEnv("ADMIN_PASSWORD", ""),
		SingleflightEnabled:   singleflightEnabled,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		ReferenceCacheTTL:     referenceCacheTTL,
		ExportWorkers:         exportWorkers,
		UptraceEnabled:        uptraceEnabled,
		UptraceDSN:            uptraceDSN,
		LogLevel:              logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL cannot be empty")
	}

	return cfg, nil
}

func defaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for TOKEN_PATH: %w", err)
	}
	return filepath.Join(home, ".tourney-admin", "token"), nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
