package cache

import (
	"context"
	"log/slog"
	"time"
)

// Status describes the lifecycle state of a query result.
type Status int

const (
	// StatusUnresolved means the query never ran: it is gated (a detail
	// read with no id yet) or the key has never been fetched or inspected.
	StatusUnresolved Status = iota
	// StatusLoading means a fetch is in flight and no value is available.
	StatusLoading
	// StatusSuccess means Value holds a resolved result.
	StatusSuccess
	// StatusError means the fetch settled with Err.
	StatusError
)

// String returns the lowercase name of the status.
func (st Status) String() string {
	switch st {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unresolved"
	}
}

// Result is the outcome of a query read. Exactly one of the non-zero
// states applies: a successful read carries Value, a failed one carries
// Err, and a gated read carries neither.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

// IsSuccess reports whether the result holds a resolved value.
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// IsError reports whether the read settled with an error.
func (r Result[T]) IsError() bool { return r.Status == StatusError }

// IsUnresolved reports whether the query never ran.
func (r Result[T]) IsUnresolved() bool { return r.Status == StatusUnresolved }

// Unresolved returns the result of a query that is not allowed to run yet.
func Unresolved[T any]() Result[T] {
	return Result[T]{Status: StatusUnresolved}
}

func success[T any](v T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: v}
}

func failure[T any](err error) Result[T] {
	return Result[T]{Status: StatusError, Err: err}
}

// FetchFunc loads the authoritative value for a key from the server.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Read resolves key through the store.
//
// A fresh, valid cached value is returned immediately; once it ages past
// the refresh threshold the value is still served but a single background
// refresh is started so the next read sees current data. A missing,
// invalidated, or expired entry triggers a synchronous fetch whose result
// populates the cache.
//
// The fetch runs under a context that a concurrent mutation on the same
// key can cancel. A cancelled fetch returns an error result and leaves the
// cache exactly as the mutation shaped it.
func Read[T any](ctx context.Context, s *Store, key Key, fetch FetchFunc[T]) Result[T] {
	s.mu.Lock()
	e, ok := s.entries[key]
	now := s.now()
	if ok && !e.invalid && now.Sub(e.fetchedAt) < s.freshness {
		v, cast := e.value.(T)
		if cast {
			age := now.Sub(e.fetchedAt)
			kick := s.refreshAfter > 0 && age >= s.refreshAfter && !s.refreshing[key]
			if kick {
				s.refreshing[key] = true
			}
			s.mu.Unlock()

			if kick {
				// Detach from the caller so the refresh survives the
				// triggering request, but keep its trace baggage.
				go refreshInBackground(context.WithoutCancel(ctx), s, key, fetch)
				s.countRead(ctx, "refresh", key)
			} else {
				s.countRead(ctx, "hit", key)
			}
			return success(v)
		}
		// A type mismatch means two queries share a key. Refetch rather
		// than serve the wrong shape.
		s.logger.WarnContext(ctx, "cached value has unexpected type, refetching",
			slog.String("key", string(key)),
		)
	}
	s.mu.Unlock()

	s.countRead(ctx, "miss", key)
	return fetchAndStore(ctx, s, key, fetch)
}

// fetchAndStore runs fetch under a cancellable registration and, unless
// the read was cancelled, writes the result back to the cache.
func fetchAndStore[T any](ctx context.Context, s *Store, key Key, fetch FetchFunc[T]) Result[T] {
	readCtx, cancel := context.WithCancel(ctx)
	id := s.registerRead(key, cancel)
	defer func() {
		s.unregisterRead(key, id)
		cancel()
	}()

	start := time.Now()
	v, err := fetch(readCtx)
	if err != nil {
		if readCtx.Err() != nil {
			s.logger.DebugContext(ctx, "read cancelled",
				slog.String("key", string(key)),
			)
		} else {
			s.logger.WarnContext(ctx, "read failed",
				slog.String("key", string(key)),
				slog.String("error", err.Error()),
				slog.Duration("elapsed", time.Since(start)),
			)
		}
		return failure[T](err)
	}

	s.mu.Lock()
	// A mutation may have cancelled this read after the fetch returned but
	// before we got the lock. Its patched state wins; discard the result.
	if readCtx.Err() == nil {
		s.putLocked(key, v)
	}
	s.mu.Unlock()

	return success(v)
}

// refreshInBackground refetches an aging entry without blocking any caller.
// Failures are logged and otherwise ignored; the stale value stays served
// until the next refresh attempt.
func refreshInBackground[T any](ctx context.Context, s *Store, key Key, fetch FetchFunc[T]) {
	defer func() {
		s.mu.Lock()
		delete(s.refreshing, key)
		s.mu.Unlock()
	}()

	res := fetchAndStore(ctx, s, key, fetch)
	if res.IsError() {
		s.logger.DebugContext(ctx, "background refresh failed",
			slog.String("key", string(key)),
			slog.String("error", res.Err.Error()),
		)
	}
}

// Inspect reports the current state of key without fetching: Success with
// the cached value when one is present and valid, Loading when a fetch is
// in flight, Unresolved otherwise.
func Inspect[T any](s *Store, key Key) Result[T] {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && !e.invalid {
		if v, cast := e.value.(T); cast {
			s.mu.Unlock()
			return success(v)
		}
	}
	inFlight := len(s.reads[key]) > 0
	s.mu.Unlock()

	if inFlight {
		return Result[T]{Status: StatusLoading}
	}
	return Unresolved[T]()
}
