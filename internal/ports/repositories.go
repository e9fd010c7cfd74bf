package ports

import (
	"context"
	"time"

	"github.com/weekplanner/core/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations.
// Implementations own the authoritative collection; callers receive
// detached copies and must re-read after mutation.
type TaskRepository interface {
	List(ctx context.Context) ([]entities.Task, error)
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	Insert(ctx context.Context, task *entities.Task) error
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id string) error
}

// EventRepository defines the interface for event data operations.
type EventRepository interface {
	List(ctx context.Context) ([]entities.Event, error)
	GetByID(ctx context.Context, id string) (*entities.Event, error)
	Insert(ctx context.Context, event *entities.Event) error
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id string) error
}

// FrequentTaskRepository defines the interface for the frequent-task
// template registry.
type FrequentTaskRepository interface {
	List(ctx context.Context) ([]entities.FrequentTask, error)
	GetByID(ctx context.Context, id string) (*entities.FrequentTask, error)
	Insert(ctx context.Context, template *entities.FrequentTask) error
	Update(ctx context.Context, template *entities.FrequentTask) error
	Delete(ctx context.Context, id string) error
}

// TimeRange bounds a calendar query; both ends are inclusive.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
