// Package ports defines the interface boundaries between layers.
//
// Client ports are implemented by the REST adapters in
// internal/clients/rest and consumed by the application services, which
// join them with the cache coordinator. Session ports are implemented by
// the platform session store. Health ports follow the registry pattern:
// components implement HealthChecker and register at startup.
package ports
