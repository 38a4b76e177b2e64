package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrQuotaExceeded is returned when a single entry would exceed the
// configured quota, mirroring a browser localStorage quota failure.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// LocalStore is a key to JSON-blob store, one file per key under a data
// directory. It is a best-effort cross-session cache: the in-memory store
// state stays the source of truth within a session, so a failed write is
// surfaced to the caller and nothing is retried.
type LocalStore struct {
	mu    sync.Mutex
	dir   string
	quota int64
}

// NewLocalStore creates the data directory if needed. quota caps the
// serialized size of a single entry in bytes; zero disables the cap.
func NewLocalStore(dir string, quota int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &LocalStore{dir: dir, quota: quota}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get unmarshals the entry stored under key into v.
// Returns false when no entry exists.
func (s *LocalStore) Get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read entry %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode entry %s: %w", key, err)
	}
	return true, nil
}

// Set serializes v and writes it under key. The write is atomic
// (temp file + rename) so a crash never leaves a half-written entry.
func (s *LocalStore) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode entry %s: %w", key, err)
	}
	if s.quota > 0 && int64(len(data)) > s.quota {
		return fmt.Errorf("entry %s is %d bytes: %w", key, len(data), ErrQuotaExceeded)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", key, err)
	}
	return nil
}

// Remove deletes the entry under key. Removing a missing key is not an error.
func (s *LocalStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove entry %s: %w", key, err)
	}
	return nil
}
