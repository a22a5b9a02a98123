// Package session implements the durable session credential store: a single
// opaque token persisted under a fixed file path, read at startup and
// rewritten on every credential change. It is the file-system analog of the
// browser key-value storage the original client kept its token in.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/plannery/plannery-go/internal/ports"
)

// Compile-time interface check.
var _ ports.SessionStore = (*FileStore)(nil)

// tokenFileMode keeps the credential readable by the owning user only.
const tokenFileMode = 0o600

// FileStore persists the session token at a fixed path. The in-memory copy
// is guarded by an RWMutex so Token() stays cheap on the request path.
type FileStore struct {
	path string

	mu    sync.RWMutex
	token string
}

// Open creates a FileStore for the given path and loads any previously
// persisted token. A missing file is not an error: it means no credential
// is known yet.
func Open(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session: token path must not be empty")
	}

	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No credential yet.
	case err != nil:
		return nil, fmt.Errorf("session: reading token file %s: %w", path, err)
	default:
		s.token = strings.TrimSpace(string(data))
	}

	return s, nil
}

// Token returns the current session credential, or "" when none is known.
func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken persists a new credential and updates the in-memory copy. The
// file is written via a temporary sibling and renamed so a crash never
// leaves a half-written token behind.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: creating token dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), tokenFileMode); err != nil {
		return fmt.Errorf("session: writing token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: replacing token file: %w", err)
	}

	s.token = token
	return nil
}

// Clear removes the persisted credential and forgets the in-memory copy.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: removing token file: %w", err)
	}

	s.token = ""
	return nil
}

// Static is a fixed-token SessionSource for tests and one-shot CLI calls
// where no durable store is wanted.
type Static string

// Token implements ports.SessionSource.
func (s Static) Token() string { return string(s) }
