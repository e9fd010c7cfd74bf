package repository

import (
	"context"
	"sync"

	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/infrastructure/storage"
	"github.com/weekplanner/core/internal/ports"
)

// FrequentTaskRepository implements the frequent-task registry over a
// single KV blob.
type FrequentTaskRepository struct {
	kv  storage.KV
	log *logger.Logger
	mu  sync.Mutex
}

// NewFrequentTaskRepository creates a new frequent task repository
func NewFrequentTaskRepository(kv storage.KV, log *logger.Logger) *FrequentTaskRepository {
	return &FrequentTaskRepository{kv: kv, log: log.WithComponent("frequent_repository")}
}

func (r *FrequentTaskRepository) load(ctx context.Context) ([]entities.FrequentTask, error) {
	var templates []entities.FrequentTask
	ok, err := loadBlob(ctx, r.kv, r.log, frequentTasksKey, &templates)
	if err != nil {
		return nil, err
	}
	if !ok {
		templates = SeedFrequentTasks()
		if err := saveBlob(ctx, r.kv, r.log, frequentTasksKey, templates); err != nil {
			return nil, err
		}
		r.log.Infow("Seeded default frequent tasks", "count", len(templates))
	}
	for i := range templates {
		templates[i].Normalize()
	}
	return templates, nil
}

func (r *FrequentTaskRepository) save(ctx context.Context, templates []entities.FrequentTask) error {
	return saveBlob(ctx, r.kv, r.log, frequentTasksKey, templates)
}

// List returns the whole registry.
func (r *FrequentTaskRepository) List(ctx context.Context) ([]entities.FrequentTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID returns the template with the given id.
func (r *FrequentTaskRepository) GetByID(ctx context.Context, id string) (*entities.FrequentTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	templates, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			template := templates[i]
			return &template, nil
		}
	}
	return nil, entities.ErrTemplateNotFound
}

// Insert appends a new template.
func (r *FrequentTaskRepository) Insert(ctx context.Context, template *entities.FrequentTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	templates, err := r.load(ctx)
	if err != nil {
		return err
	}
	templates = append(templates, *template)
	return r.save(ctx, templates)
}

// Update replaces the stored template with the same id.
func (r *FrequentTaskRepository) Update(ctx context.Context, template *entities.FrequentTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	templates, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range templates {
		if templates[i].ID == template.ID {
			templates[i] = *template
			return r.save(ctx, templates)
		}
	}
	return entities.ErrTemplateNotFound
}

// Delete removes the template with the given id.
func (r *FrequentTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	templates, err := r.load(ctx)
	if err != nil {
		return err
	}
	filtered := templates[:0]
	for _, t := range templates {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(templates) {
		return entities.ErrTemplateNotFound
	}
	return r.save(ctx, filtered)
}

var _ ports.FrequentTaskRepository = (*FrequentTaskRepository)(nil)
