package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/plannery/plannery-go/internal/platform/telemetry"
)

// entry is one cached value. A present entry with invalid=true still holds
// its last value but must be refetched before it is served again.
type entry struct {
	value     any
	fetchedAt time.Time
	invalid   bool
}

// snapshotEntry records the exact state of one key so a failed mutation can
// restore it. present=false means the key was absent and must be absent
// again after restore.
type snapshotEntry struct {
	key     Key
	value   any
	fetched time.Time
	invalid bool
	present bool
}

// Store is the keyed cache shared by all resource queries. The zero value
// is not usable; construct with New.
type Store struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	reads      map[Key]map[int64]context.CancelFunc
	refreshing map[Key]bool
	nextReadID int64

	freshness    time.Duration
	refreshAfter time.Duration
	now          func() time.Time
	logger       *slog.Logger
	metrics      *telemetry.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithFreshness sets how long a cached value is served without refetching.
func WithFreshness(d time.Duration) Option {
	return func(s *Store) { s.freshness = d }
}

// WithRefreshAfter sets the age past which a served value also kicks a
// background refresh. Zero disables background refreshes.
func WithRefreshAfter(d time.Duration) Option {
	return func(s *Store) { s.refreshAfter = d }
}

// WithClock overrides the time source. Tests use this to age entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for read and mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics attaches the metric instruments for cache reads and mutation
// settlements.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates an empty Store. Defaults: 30s freshness, no background
// refresh, wall clock, discarding logger.
func New(opts ...Option) *Store {
	s := &Store{
		entries:    make(map[Key]*entry),
		reads:      make(map[Key]map[int64]context.CancelFunc),
		refreshing: make(map[Key]bool),
		freshness:  30 * time.Second,
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Peek returns the cached value for key, if any, regardless of freshness or
// invalidation. It never triggers a fetch.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Put stores a value under key, stamped with the current time. Existing
// invalidation is cleared: a fresh value is authoritative.
func (s *Store) Put(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(key, value)
}

func (s *Store) putLocked(key Key, value any) {
	s.entries[key] = &entry{value: value, fetchedAt: s.now()}
}

// Invalidate marks every entry covered by any of the given keys as needing
// a refetch. Values are retained (Peek still sees them) but the next Read
// goes to the network. Invalidating an absent key is a no-op.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked(keys)
}

func (s *Store) invalidateLocked(keys []Key) {
	for k, e := range s.entries {
		for _, target := range keys {
			if target.Covers(k) {
				e.invalid = true
				break
			}
		}
	}
}

// Drop removes every entry covered by any of the given keys, returning the
// cache to the "unknown" state for them. Used on session clear.
func (s *Store) Drop(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		for _, target := range keys {
			if target.Covers(k) {
				delete(s.entries, k)
				break
			}
		}
	}
}

// registerRead records an in-flight read's cancel func so a later mutation
// on the same key can abort it. The returned id unregisters it.
func (s *Store) registerRead(key Key, cancel context.CancelFunc) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReadID++
	id := s.nextReadID
	m, ok := s.reads[key]
	if !ok {
		m = make(map[int64]context.CancelFunc)
		s.reads[key] = m
	}
	m[id] = cancel
	return id
}

func (s *Store) unregisterRead(key Key, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.reads[key]
	if !ok {
		return
	}
	delete(m, id)
	if len(m) == 0 {
		delete(s.reads, key)
	}
}

// readInFlight reports whether any read is currently registered for key.
func (s *Store) readInFlight(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reads[key]) > 0
}

// cancelReadsLocked aborts every registered read whose key is covered by
// any of the given keys. The cancelled fetches see a dead context and will
// not write their results back.
func (s *Store) cancelReadsLocked(keys []Key) {
	for k, m := range s.reads {
		for _, target := range keys {
			if target.Covers(k) {
				for _, cancel := range m {
					cancel()
				}
				delete(s.reads, k)
				break
			}
		}
	}
}

// snapshotLocked captures the exact state of the given keys, absent keys
// included.
func (s *Store) snapshotLocked(keys []Key) []snapshotEntry {
	snap := make([]snapshotEntry, 0, len(keys))
	for _, k := range keys {
		e, ok := s.entries[k]
		if !ok {
			snap = append(snap, snapshotEntry{key: k})
			continue
		}
		snap = append(snap, snapshotEntry{
			key:     k,
			value:   e.value,
			fetched: e.fetchedAt,
			invalid: e.invalid,
			present: true,
		})
	}
	return snap
}

// restoreLocked puts every snapshotted key back verbatim, removing entries
// that were absent at snapshot time.
func (s *Store) restoreLocked(snap []snapshotEntry) {
	for _, se := range snap {
		if !se.present {
			delete(s.entries, se.key)
			continue
		}
		s.entries[se.key] = &entry{
			value:     se.value,
			fetchedAt: se.fetched,
			invalid:   se.invalid,
		}
	}
}

func (s *Store) countRead(ctx context.Context, result string, key Key) {
	if s.metrics == nil {
		return
	}
	s.metrics.CacheReadTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrResult.String(result),
		telemetry.AttrResource.String(string(key)),
	))
}

func (s *Store) countMutation(ctx context.Context, result, name string) {
	if s.metrics == nil {
		return
	}
	s.metrics.MutationTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrResult.String(result),
		telemetry.AttrResource.String(name),
	))
}
