// Package app provides the per-resource services that front the cache for
// callers. Each service owns one resource's cache keys and drives the read
// path (cached-or-fetch) and the optimistic write path (patch, call,
// settle) through the shared cache.Store, delegating network access to the
// client ports.
package app
