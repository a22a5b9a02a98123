package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.API.validate(),
		c.Cache.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Stub.validate(),
	)
}

func (a *APIConfig) validate() error {
	var errs []error

	if a.Origin == "" {
		errs = append(errs, errors.New("api.origin must not be empty"))
	}
	if a.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if a.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.requests_per_second must not be negative, got %f",
			a.RateLimit.RequestsPerSecond))
	}
	if a.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("api.circuit_breaker.max_failures must be >= 1, got %d",
			a.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (c *CacheConfig) validate() error {
	var errs []error

	if c.Freshness <= 0 {
		errs = append(errs, errors.New("cache.freshness must be positive"))
	}
	if c.RefreshAfter < 0 || c.RefreshAfter > c.Freshness {
		errs = append(errs, errors.New("cache.refresh_after must be between 0 and cache.freshness"))
	}
	if c.PreloadWorkers < 1 {
		errs = append(errs, fmt.Errorf("cache.preload_workers must be >= 1, got %d", c.PreloadWorkers))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (s *StubConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("stub.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("stub.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("stub.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}
