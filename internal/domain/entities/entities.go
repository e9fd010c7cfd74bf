package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrTemplateNotFound = errors.New("frequent task not found")
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrStartTimeInPast  = errors.New("start time cannot be in the past")
)

// Enums and types
type Category string

const (
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategorySocial    Category = "social"
	CategoryOther     Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryHealth,
	CategoryEducation,
	CategorySocial,
	CategoryOther,
}

// IsValid reports whether c is one of the closed category set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth,
		CategoryEducation, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// NormalizeCategory maps an arbitrary string to a valid category.
// Unknown or empty values fall back to CategoryOther; this is the
// validate-on-read path for blobs persisted by older versions that
// stored categories as loose strings.
func NormalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every valid priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValid reports whether p is one of the closed priority set.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank returns the ordering of the priority, low (0) through urgent (3).
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	}
	return -1
}

// NormalizePriority maps an arbitrary string to a valid priority,
// falling back to PriorityMedium.
func NormalizePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return PriorityMedium
}

// Task represents a planner task, either scheduled on the week grid or
// sitting in the backlog.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	IsBacklog   bool       `json:"isBacklog,omitempty"`
	IsFavorite  bool       `json:"isFavorite,omitempty"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsScheduled reports whether the task has a slot on the calendar grid.
func (t *Task) IsScheduled() bool {
	return t.StartTime != nil && !t.IsBacklog
}

// Normalize coerces the enum fields into their closed sets. Called on
// every read so blobs written with loose strings stay usable.
func (t *Task) Normalize() {
	t.Category = NormalizeCategory(string(t.Category))
	t.Priority = NormalizePriority(string(t.Priority))
}

// Event represents a calendar event with a mandatory time range.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Duration returns the event length.
func (e *Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// FrequentTask is a reusable template for fast task re-creation,
// ranked by how often it has been used.
type FrequentTask struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Category          Category  `json:"category"`
	Priority          Priority  `json:"priority"`
	EstimatedDuration int       `json:"estimatedDuration,omitempty"` // minutes
	UsageCount        int       `json:"usageCount"`
	LastUsed          time.Time `json:"lastUsed"`
	CreatedAt         time.Time `json:"createdAt"`
	Tags              []string  `json:"tags,omitempty"`
}

// Normalize coerces the enum fields into their closed sets.
func (f *FrequentTask) Normalize() {
	f.Category = NormalizeCategory(string(f.Category))
	f.Priority = NormalizePriority(string(f.Priority))
}

// MatchesQuery reports whether the template matches a case-insensitive
// substring search over title, description and tags.
func (f *FrequentTask) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(f.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(f.Description), q) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
