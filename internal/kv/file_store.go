// Package kv provides the process-local durable key-value store behind the
// planner's offline mode. Each key is one file under the store root; writes
// replace the whole value atomically.
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// keyPattern restricts keys to names that are safe as file names on every
// platform.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,200}$`)

// ErrInvalidKey is returned when a key cannot be mapped onto a file name.
var ErrInvalidKey = errors.New("kv: invalid key")

// Store is the minimal key-value contract the local backend depends on.
type Store interface {
	// Get returns the value for key. The bool is false when the key has
	// never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// FileStore is a Store that keeps one file per key under root.
type FileStore struct {
	root string
	mu   sync.RWMutex
}

// compile-time check: FileStore must satisfy Store.
var _ Store = (*FileStore)(nil)

// OpenFileStore creates root if needed and returns a store rooted there.
func OpenFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("kv.OpenFileStore: root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("kv.OpenFileStore: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Root returns the directory holding the store's files.
func (s *FileStore) Root() string { return s.root }

// Get reads the value stored for key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv.FileStore.Get %s: %w", key, err)
	}
	return raw, true, nil
}

// Set writes value to a temp file and renames it over the key's file, so a
// reader never observes a partially written value.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.root, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("kv.FileStore.Set %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kv.FileStore.Set %s: write: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv.FileStore.Set %s: close: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv.FileStore.Set %s: rename: %w", key, err)
	}
	return nil
}

// Delete removes the key's file if present.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("kv.FileStore.Delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, key+".json"), nil
}
