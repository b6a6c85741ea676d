// ABOUTME: Persisted access/refresh token pair storage for the NovaIntel client
// ABOUTME: Provides a file-backed store under the XDG config dir and an in-memory store for tests

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Tokens is the credential pair issued by the backend. The two tokens are
// always written and cleared together; a stored pair with either half missing
// is treated as no session at all.
type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// IsZero reports whether no usable session is held.
func (t Tokens) IsZero() bool {
	return t.Access == "" || t.Refresh == ""
}

// Store persists the token pair between invocations.
type Store interface {
	// Load returns the stored pair, or a zero Tokens when no session exists.
	Load() (Tokens, error)
	// Save persists both tokens. Both must be non-empty.
	Save(Tokens) error
	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear() error
}

// FileStore keeps the token pair in a JSON file, the terminal analog of the
// browser's token storage. The file is written with 0600 permissions.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the session file location.
// Priority: XDG_CONFIG_HOME/nova/session.json > ~/.config/nova/session.json
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "session.json" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nova", "session.json")
}

// Load reads the stored pair. A missing file or a half-written pair counts as
// no session.
func (s *FileStore) Load() (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Tokens{}, nil
		}
		return Tokens{}, fmt.Errorf("reading session file: %w", err)
	}

	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}, fmt.Errorf("parsing session file: %w", err)
	}
	if t.IsZero() {
		return Tokens{}, nil
	}
	return t, nil
}

// Save persists the pair, creating parent directories as needed.
func (s *FileStore) Save(t Tokens) error {
	if t.IsZero() {
		return fmt.Errorf("refusing to save incomplete token pair")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// MemoryStore holds the pair in memory. Used by tests and embedders that
// manage persistence themselves.
type MemoryStore struct {
	mu     sync.Mutex
	tokens Tokens
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held pair.
func (s *MemoryStore) Load() (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens.IsZero() {
		return Tokens{}, nil
	}
	return s.tokens, nil
}

// Save holds the pair.
func (s *MemoryStore) Save(t Tokens) error {
	if t.IsZero() {
		return fmt.Errorf("refusing to save incomplete token pair")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	return nil
}

// Clear drops the pair.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	return nil
}
