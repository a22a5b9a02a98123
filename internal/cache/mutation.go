package cache

import (
	"context"
	"log/slog"
	"slices"
)

// Patch is one optimistic edit to a cached entry. Apply receives the
// current value (present=false when the key is absent) and returns the
// replacement plus whether to write it. Returning false leaves the entry
// untouched; an absent entry stays "unknown" rather than being fabricated.
type Patch struct {
	Key   Key
	Apply func(current any, present bool) (any, bool)
}

// Mutation describes one write: the optimistic patches applied before the
// network call, the keys invalidated once it settles, and the call itself.
type Mutation struct {
	// Name labels the mutation in logs and metrics, e.g. "projects.create".
	Name string

	Patches []Patch

	// Invalidates lists the keys marked for refetch after the call
	// settles, success or failure. Roots cover their derived keys.
	Invalidates []Key

	Call func(ctx context.Context) error
}

// Mutate runs one optimistic write through the store.
//
// Under a single lock acquisition it cancels in-flight reads for every
// affected key, snapshots the patched keys, and applies the patches. Then
// the network call runs outside the lock. On failure the snapshot is
// restored verbatim; on success the optimistic values stand until the
// invalidation forces a refetch. Either way every key in Invalidates is
// marked for refresh before Mutate returns.
//
// Concurrent mutations on the same key settle in completion order, not
// submission order: a slow failing write that settles after a fast
// successful one restores its older snapshot over the newer state. The
// closing invalidation bounds the damage, the next read refetches the
// authoritative value.
func (s *Store) Mutate(ctx context.Context, m Mutation) error {
	patched := make([]Key, 0, len(m.Patches))
	for _, p := range m.Patches {
		if !slices.Contains(patched, p.Key) {
			patched = append(patched, p.Key)
		}
	}
	affected := slices.Clone(patched)
	for _, k := range m.Invalidates {
		if !slices.Contains(affected, k) {
			affected = append(affected, k)
		}
	}

	s.mu.Lock()
	s.cancelReadsLocked(affected)
	snap := s.snapshotLocked(patched)
	for _, p := range m.Patches {
		e, ok := s.entries[p.Key]
		var cur any
		if ok {
			cur = e.value
		}
		if next, write := p.Apply(cur, ok); write {
			s.putLocked(p.Key, next)
		}
	}
	s.mu.Unlock()

	err := m.Call(ctx)

	s.mu.Lock()
	if err != nil {
		s.restoreLocked(snap)
	}
	s.invalidateLocked(m.Invalidates)
	s.mu.Unlock()

	if err != nil {
		s.countMutation(ctx, "rollback", m.Name)
		s.logger.WarnContext(ctx, "mutation rolled back",
			slog.String("mutation", m.Name),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.countMutation(ctx, "commit", m.Name)
	s.logger.DebugContext(ctx, "mutation committed",
		slog.String("mutation", m.Name),
	)
	return nil
}

// AppendItem returns a patch that appends item to the cached list at key.
// No-op when the list is not cached: absence means unknown, and guessing a
// one-element list would misrepresent the collection.
func AppendItem[T any](key Key, item T) Patch {
	return Patch{Key: key, Apply: func(current any, present bool) (any, bool) {
		if !present {
			return nil, false
		}
		list, ok := current.([]T)
		if !ok {
			return nil, false
		}
		next := make([]T, 0, len(list)+1)
		next = append(next, list...)
		next = append(next, item)
		return next, true
	}}
}

// UpdateItem returns a patch that rewrites every matching element of the
// cached list at key. No-op when the list is not cached.
func UpdateItem[T any](key Key, match func(T) bool, apply func(T) T) Patch {
	return Patch{Key: key, Apply: func(current any, present bool) (any, bool) {
		if !present {
			return nil, false
		}
		list, ok := current.([]T)
		if !ok {
			return nil, false
		}
		next := make([]T, len(list))
		for i, item := range list {
			if match(item) {
				item = apply(item)
			}
			next[i] = item
		}
		return next, true
	}}
}

// RemoveItem returns a patch that drops every matching element from the
// cached list at key. No-op when the list is not cached.
func RemoveItem[T any](key Key, match func(T) bool) Patch {
	return Patch{Key: key, Apply: func(current any, present bool) (any, bool) {
		if !present {
			return nil, false
		}
		list, ok := current.([]T)
		if !ok {
			return nil, false
		}
		next := make([]T, 0, len(list))
		for _, item := range list {
			if !match(item) {
				next = append(next, item)
			}
		}
		return next, true
	}}
}

// UpdateEntity returns a patch that rewrites the cached single value at
// key. No-op when the value is not cached.
func UpdateEntity[T any](key Key, apply func(T) T) Patch {
	return Patch{Key: key, Apply: func(current any, present bool) (any, bool) {
		if !present {
			return nil, false
		}
		v, ok := current.(T)
		if !ok {
			return nil, false
		}
		return apply(v), true
	}}
}
