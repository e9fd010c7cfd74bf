package repository

import (
	"context"
	"sync"

	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/infrastructure/storage"
	"github.com/weekplanner/core/internal/ports"
)

// TaskRepository implements the task repository interface over a single
// KV blob.
type TaskRepository struct {
	kv     storage.KV
	log    *logger.Logger
	userID string
	mu     sync.Mutex
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(kv storage.KV, log *logger.Logger, userID string) *TaskRepository {
	return &TaskRepository{kv: kv, log: log.WithComponent("task_repository"), userID: userID}
}

// load returns the full collection, seeding the first-run sample set
// when the blob is missing or corrupt.
func (r *TaskRepository) load(ctx context.Context) ([]entities.Task, error) {
	var tasks []entities.Task
	ok, err := loadBlob(ctx, r.kv, r.log, tasksKey, &tasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		tasks = SeedTasks(r.userID)
		if err := saveBlob(ctx, r.kv, r.log, tasksKey, tasks); err != nil {
			return nil, err
		}
		r.log.Infow("Seeded sample tasks", "count", len(tasks))
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks, nil
}

func (r *TaskRepository) save(ctx context.Context, tasks []entities.Task) error {
	return saveBlob(ctx, r.kv, r.log, tasksKey, tasks)
}

// List returns the whole collection.
func (r *TaskRepository) List(ctx context.Context) ([]entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID returns the task with the given id.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			task := tasks[i]
			return &task, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

// Insert appends a new task.
func (r *TaskRepository) Insert(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	tasks = append(tasks, *task)
	return r.save(ctx, tasks)
}

// Update replaces the stored task with the same id.
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = *task
			return r.save(ctx, tasks)
		}
	}
	return entities.ErrTaskNotFound
}

// Delete removes the task with the given id.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	filtered := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(tasks) {
		return entities.ErrTaskNotFound
	}
	return r.save(ctx, filtered)
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
