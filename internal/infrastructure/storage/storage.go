// Package storage provides the key-value backing store behind the
// planner repositories. Each collection lives under a single key as one
// serialized blob; the store itself knows nothing about entities.
package storage

import (
	"context"
	"fmt"

	"github.com/weekplanner/core/internal/infrastructure/config"
)

// KV is a minimal key-value store. Get reports a missing key through
// the bool rather than an error; missing data is an expected first-run
// condition, not a fault.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the KV backend selected by cfg.
func Open(cfg config.StorageConfig) (KV, error) {
	switch cfg.Backend {
	case "file":
		dir := cfg.Dir
		if dir == "" {
			resolved, err := ResolveDataDir()
			if err != nil {
				return nil, fmt.Errorf("resolve data dir: %w", err)
			}
			dir = resolved
		}
		return NewFileKV(dir)
	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			resolved, err := ResolveDataDir()
			if err != nil {
				return nil, fmt.Errorf("resolve data dir: %w", err)
			}
			path = resolved + "/planner.db"
		}
		return NewSQLiteKV(path)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
