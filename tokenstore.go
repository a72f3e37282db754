package shoptaboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists the access/refresh token pair. The session service is
// the only writer; every authenticated service reads the access token from
// it at point of use. No expiry tracking is performed locally: validity is
// determined only by the server's response to an authenticated call.
type TokenStore interface {
	// Save overwrites both values unconditionally.
	Save(tokens Tokens) error
	// AccessToken returns the stored access token, or false if never set
	// or cleared.
	AccessToken() (string, bool)
	// RefreshToken returns the stored refresh token, or false if never set
	// or cleared.
	RefreshToken() (string, bool)
	// Clear removes both values. Clearing an empty store is not an error.
	Clear() error
	// Has reports whether both values are present.
	Has() bool
}

// MemoryTokenStore keeps the token pair in memory for the lifetime of the
// process. It is the default store and is safe for concurrent use.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens Tokens
	set    bool
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Save stores the token pair.
func (s *MemoryTokenStore) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	s.set = true
	return nil
}

// AccessToken returns the stored access token.
func (s *MemoryTokenStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set || s.tokens.AccessToken == "" {
		return "", false
	}
	return s.tokens.AccessToken, true
}

// RefreshToken returns the stored refresh token.
func (s *MemoryTokenStore) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set || s.tokens.RefreshToken == "" {
		return "", false
	}
	return s.tokens.RefreshToken, true
}

// Clear removes the token pair. Idempotent.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	s.set = false
	return nil
}

// Has reports whether both tokens are present.
func (s *MemoryTokenStore) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set && s.tokens.AccessToken != "" && s.tokens.RefreshToken != ""
}

// FileTokenStore persists the token pair to a JSON file so a session
// survives process restarts. Writes use the temp-file + fsync + rename
// pattern so the file is never observed half-written.
type FileTokenStore struct {
	mu   sync.RWMutex
	path string
	data fileTokenData
}

type fileTokenData struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// NewFileTokenStore creates or opens a token store at the given path.
// The parent directory is created with 0700 permissions if missing; the
// file itself is written with 0600.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	store := &FileTokenStore{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	if err := store.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return store, nil
}

// Path returns the token file path.
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	// Empty file is valid: no tokens stored yet.
	if len(data) == 0 {
		return nil
	}

	var fd fileTokenData
	if err := json.Unmarshal(data, &fd); err != nil {
		return fmt.Errorf("token file corrupted: %w", err)
	}

	s.data = fd
	return nil
}

// syncLocked writes token data atomically. Must be called with the write
// lock held.
func (s *FileTokenStore) syncLocked() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// Save stores the token pair and flushes it to disk.
func (s *FileTokenStore) Save(tokens Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileTokenData{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	return s.syncLocked()
}

// AccessToken returns the stored access token.
func (s *FileTokenStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.AccessToken == "" {
		return "", false
	}
	return s.data.AccessToken, true
}

// RefreshToken returns the stored refresh token.
func (s *FileTokenStore) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.RefreshToken == "" {
		return "", false
	}
	return s.data.RefreshToken, true
}

// Clear removes the token pair from memory and disk. Idempotent.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileTokenData{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Has reports whether both tokens are present.
func (s *FileTokenStore) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AccessToken != "" && s.data.RefreshToken != ""
}
