// Package domain holds the entities managed by the planning API (projects,
// venues, mission templates, mission tags), their create/patch payloads, and
// the error types shared across the module.
//
// All entities are server-owned: the client only ever holds cached copies,
// and every identity is an opaque string assigned by the server. Optimistic
// placeholder identities (see NewOptimisticID) exist only between a write
// being issued and the server's authoritative response arriving.
package domain
