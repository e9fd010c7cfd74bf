package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKV stores each key as one JSON file under a data root. Writes go
// through a temp file and rename so a crash never leaves a half-written
// blob behind.
type FileKV struct {
	root string
}

// NewFileKV creates a store rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, errors.New("empty dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{root: dir}, nil
}

func (s *FileKV) path(key string) string {
	// Keys are fixed application constants, but keep path traversal out
	// just in case.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.root, safe+".json")
}

// Get reads the blob stored under key; a missing file is not an error.
func (s *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Put atomically replaces the blob stored under key.
func (s *FileKV) Put(ctx context.Context, key string, value []byte) error {
	path := s.path(key)
	tmp, err := os.CreateTemp(s.root, "kv-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Delete removes the blob stored under key; no-op if absent.
func (s *FileKV) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileKV) Close() error { return nil }

var _ KV = (*FileKV)(nil)
