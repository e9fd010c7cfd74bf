package ports

import (
	"time"

	"github.com/weekplanner/core/internal/domain/entities"
)

// CreateTaskRequest carries the fields accepted when creating a task.
// Scheduled tasks set StartTime; backlog tasks leave it nil.
type CreateTaskRequest struct {
	Title       string `validate:"required"`
	Description string
	StartTime   *time.Time
	DueDate     *time.Time
	Category    entities.Category
	Priority    entities.Priority
	IsFavorite  bool
}

// UpdateTaskRequest carries a partial task update. Nil fields are left
// untouched; ID and CreatedAt can never be changed through an update.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	ClearStart  bool
	DueDate     *time.Time
	ClearDue    bool
	Category    *entities.Category
	Priority    *entities.Priority
	Completed   *bool
	IsBacklog   *bool
	IsFavorite  *bool
}

// CreateEventRequest carries the fields accepted when creating an
// event. A zero EndTime is default-filled from the configured duration.
type CreateEventRequest struct {
	Title       string `validate:"required"`
	Description string
	StartTime   time.Time `validate:"required"`
	EndTime     time.Time
	Location    string
	Attendees   []string
}

// UpdateEventRequest carries a partial event update.
type UpdateEventRequest struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	Attendees   []string
}

// TemplateInput carries the fields accepted when adding a frequent-task
// template. Usage counters and timestamps are assigned by the service.
type TemplateInput struct {
	Title             string `validate:"required"`
	Description       string
	Category          entities.Category
	Priority          entities.Priority
	EstimatedDuration int `validate:"gte=0"`
	Tags              []string
}
