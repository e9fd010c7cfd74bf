// Package repository implements the ports repository interfaces on top
// of the key-value storage layer. Every collection is one JSON array
// under a fixed key; each operation is a full read-modify-write cycle,
// which is fine at personal-planner scale.
package repository

import (
	"context"
	"encoding/json"

	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/infrastructure/storage"
)

// Storage keys, one blob per collection.
const (
	tasksKey         = "week-planner-tasks"
	eventsKey        = "week-planner-events"
	frequentTasksKey = "week-planner-frequent-tasks"
)

// Repositories bundles the three collection repositories over one KV
// backend.
type Repositories struct {
	Tasks         *TaskRepository
	Events        *EventRepository
	FrequentTasks *FrequentTaskRepository
}

// New creates the repositories. userID is stamped on seeded sample
// data.
func New(kv storage.KV, log *logger.Logger, userID string) *Repositories {
	return &Repositories{
		Tasks:         NewTaskRepository(kv, log, userID),
		Events:        NewEventRepository(kv, log, userID),
		FrequentTasks: NewFrequentTaskRepository(kv, log),
	}
}

// ClearAll drops every collection blob. The next read reseeds the
// first-run sample data.
func (r *Repositories) ClearAll(ctx context.Context) error {
	for _, key := range []string{tasksKey, eventsKey, frequentTasksKey} {
		if err := r.Tasks.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// loadBlob reads and decodes the blob under key into dest. It returns
// false when the key is absent or the blob does not decode; the caller
// reseeds in both cases. Decode failures are logged, not surfaced.
func loadBlob(ctx context.Context, kv storage.KV, log *logger.Logger, key string, dest interface{}) (bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.LogStorageOp("get", key, err)
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.WithError(err).Warnw("Discarding corrupt collection blob", "key", key)
		return false, nil
	}
	return true, nil
}

// saveBlob encodes and writes value under key.
func saveBlob(ctx context.Context, kv storage.KV, log *logger.Logger, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		log.LogStorageOp("marshal", key, err)
		return err
	}
	if err := kv.Put(ctx, key, data); err != nil {
		log.LogStorageOp("put", key, err)
		return err
	}
	log.LogStorageOp("put", key, nil)
	return nil
}
