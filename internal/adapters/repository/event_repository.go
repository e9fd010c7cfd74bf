package repository

import (
	"context"
	"sync"

	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/infrastructure/storage"
	"github.com/weekplanner/core/internal/ports"
)

// EventRepository implements the event repository interface over a
// single KV blob.
type EventRepository struct {
	kv     storage.KV
	log    *logger.Logger
	userID string
	mu     sync.Mutex
}

// NewEventRepository creates a new event repository
func NewEventRepository(kv storage.KV, log *logger.Logger, userID string) *EventRepository {
	return &EventRepository{kv: kv, log: log.WithComponent("event_repository"), userID: userID}
}

func (r *EventRepository) load(ctx context.Context) ([]entities.Event, error) {
	var events []entities.Event
	ok, err := loadBlob(ctx, r.kv, r.log, eventsKey, &events)
	if err != nil {
		return nil, err
	}
	if !ok {
		events = SeedEvents(r.userID)
		if err := saveBlob(ctx, r.kv, r.log, eventsKey, events); err != nil {
			return nil, err
		}
		r.log.Infow("Seeded sample events", "count", len(events))
	}
	return events, nil
}

func (r *EventRepository) save(ctx context.Context, events []entities.Event) error {
	return saveBlob(ctx, r.kv, r.log, eventsKey, events)
}

// List returns the whole collection.
func (r *EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID returns the event with the given id.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			event := events[i]
			return &event, nil
		}
	}
	return nil, entities.ErrEventNotFound
}

// Insert appends a new event.
func (r *EventRepository) Insert(ctx context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.load(ctx)
	if err != nil {
		return err
	}
	events = append(events, *event)
	return r.save(ctx, events)
}

// Update replaces the stored event with the same id.
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = *event
			return r.save(ctx, events)
		}
	}
	return entities.ErrEventNotFound
}

// Delete removes the event with the given id.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.load(ctx)
	if err != nil {
		return err
	}
	filtered := events[:0]
	for _, e := range events {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(events) {
		return entities.ErrEventNotFound
	}
	return r.save(ctx, filtered)
}

var _ ports.EventRepository = (*EventRepository)(nil)
