// Package config provides configuration loading and validation for the
// client and the stub server. Configuration is loaded from YAML files with
// environment variable overrides using a layered system:
// defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the module's binaries.
type Config struct {
	API       APIConfig       `koanf:"api"`
	Cache     CacheConfig     `koanf:"cache"`
	Session   SessionConfig   `koanf:"session"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Stub      StubConfig      `koanf:"stub"`
}

// APIConfig holds settings for the outbound transport client.
//
// BaseURL resolution: an explicit value here (or via PLANNERY_API_BASE_URL)
// wins; when left empty the client falls back to the path-relative "/api"
// prefix. Relative bases are resolved against Origin.
type APIConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Origin         string               `koanf:"origin"`
	Timeout        time.Duration        `koanf:"timeout"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// RateLimitConfig holds outbound rate limiter settings. A zero
// RequestsPerSecond disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// CacheConfig holds cache coordinator settings. Freshness is how long a
// fetched value is served without hitting the network; RefreshAfter is the
// age past which a served value also triggers a background refresh.
type CacheConfig struct {
	Freshness      time.Duration `koanf:"freshness"`
	RefreshAfter   time.Duration `koanf:"refresh_after"`
	PreloadWorkers int           `koanf:"preload_workers"`
}

// SessionConfig holds the durable session credential store settings.
type SessionConfig struct {
	TokenPath string `koanf:"token_path"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// StubConfig holds HTTP server settings for the development stub backend.
type StubConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	SessionToken string        `koanf:"session_token"`
}
