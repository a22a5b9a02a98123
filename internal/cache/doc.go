// Package cache implements the keyed in-memory cache of server-derived data
// and the optimistic-update protocol around it.
//
// Every logical query has a stable Key. Detail keys are derived from the
// resource root ("projects" covers "projects/list" and
// "projects/detail/42"), so invalidating a root covers all derived keys.
//
// Reads either serve a fresh cached value immediately (optionally kicking a
// background refresh once the value ages past the refresh threshold) or
// fetch synchronously and populate the cache. An absent entry means
// "unknown", never "empty". Cancelling a read is side-effect-free: a
// cancelled fetch never touches the cache.
//
// Writes go through Store.Mutate: in-flight reads for affected keys are
// cancelled, current values are snapshotted, the optimistic patches are
// applied, and only then does the network call go out. Success supersedes
// the optimistic guess with invalidation (the next read refetches the
// authoritative state); failure restores the snapshot verbatim. Either way
// affected keys are marked for refresh.
//
// The cache is the only shared mutable resource in this layer. All access
// funnels through the Store's single mutex; there is no per-entry locking.
package cache
