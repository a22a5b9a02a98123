package config

const (
	defaultStubPort = 8080

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultPreloadWorkers = 4
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML,
// and env vars.
func defaults() map[string]any {
	return map[string]any{
		// Empty base_url means "use the /api path-relative fallback".
		"api.base_url":                        "",
		"api.origin":                          "http://localhost",
		"api.timeout":                         "30s",
		"api.rate_limit.requests_per_second":  0.0,
		"api.rate_limit.burst_size":           1,
		"api.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"api.circuit_breaker.timeout":         "30s",
		"api.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"cache.freshness":       "30s",
		"cache.refresh_after":   "10s",
		"cache.preload_workers": defaultPreloadWorkers,

		"session.token_path": "",

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "plannery",

		"stub.host":          "0.0.0.0",
		"stub.port":          defaultStubPort,
		"stub.read_timeout":  "5s",
		"stub.write_timeout": "10s",
		"stub.idle_timeout":  "120s",
		"stub.session_token": "",
	}
}
