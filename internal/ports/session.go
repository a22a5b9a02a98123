package ports

// SessionSource yields the current session credential. An empty string means
// no credential is known; the transport then sends no X-Session-Token header.
type SessionSource interface {
	Token() string
}

// SessionStore is a durable session credential store. Implementations persist
// the token under a fixed key so it survives restarts, mirroring the
// browser's key-value storage the original client used.
type SessionStore interface {
	SessionSource

	// SetToken persists a new credential, replacing any previous one.
	SetToken(token string) error

	// Clear removes the persisted credential.
	Clear() error
}
