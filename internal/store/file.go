package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileStore persists each key as one JSON document in a directory. Writes
// are atomic (temp file + rename) and serialized across processes with a
// flock on the store directory, so two sieve instances sharing a data dir
// never interleave partial writes.
type FileStore struct {
	dir  string
	lock *flock.Flock
}

// NewFileStore creates (if needed) the store directory and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".store.lock")),
	}, nil
}

// Get reads the value for key. A missing file reports (nil, false, nil).
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	if !validKey(key) {
		return nil, false, fmt.Errorf("invalid store key: %q", key)
	}

	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read store entry %s: %w", key, err)
	}
	return data, true, nil
}

// Put writes the value for key atomically under the store lock.
func (s *FileStore) Put(key string, value []byte) error {
	if !validKey(key) {
		return fmt.Errorf("invalid store key: %q", key)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	path := s.keyPath(key)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, value, 0o644); err != nil {
		return fmt.Errorf("failed to write store entry %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save store entry %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key. Missing entries are a no-op.
func (s *FileStore) Delete(key string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid store key: %q", key)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete store entry %s: %w", key, err)
	}
	return nil
}

// Close releases the store lock file handle if held.
func (s *FileStore) Close() error {
	return s.lock.Close()
}

func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}
