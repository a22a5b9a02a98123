package domain

import (
	"strings"

	"github.com/google/uuid"
)

// optimisticPrefix marks placeholder identities minted client-side while a
// create is in flight. They must never survive reconciliation with the server.
const optimisticPrefix = "optimistic-"

// NewOptimisticID mints a temporary placeholder identity for an optimistic
// create. The server-assigned id replaces it once the write settles.
func NewOptimisticID() string {
	return optimisticPrefix + uuid.NewString()
}

// IsOptimisticID reports whether id is a client-minted placeholder.
func IsOptimisticID(id string) bool {
	return strings.HasPrefix(id, optimisticPrefix)
}
