package ports

import "context"

// HealthChecker is implemented by components whose availability can be
// probed. The transport client satisfies this structurally by reporting its
// circuit breaker state.
type HealthChecker interface {
	// Name identifies the component in health reports.
	Name() string

	// HealthCheck returns nil when healthy, or a descriptive error.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects health checkers registered at startup.
type HealthRegistry interface {
	Register(checker HealthChecker)
	CheckAll(ctx context.Context) map[string]error
}
