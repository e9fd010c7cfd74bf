package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/weekplanner/core/internal/domain/dates"
	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/config"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/ports"
)

// EventService handles calendar event operations.
type EventService struct {
	events   ports.EventRepository
	cfg      config.PlannerConfig
	log      *logger.Logger
	validate *validator.Validate
}

// NewEventService creates a new event service
func NewEventService(events ports.EventRepository, cfg config.PlannerConfig, log *logger.Logger) *EventService {
	return &EventService{
		events:   events,
		cfg:      cfg,
		log:      log.WithComponent("event_service"),
		validate: validator.New(),
	}
}

// ListEvents returns every event.
func (s *EventService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return s.events.List(ctx)
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.events.GetByID(ctx, id)
}

// CreateEvent creates an event. Both ends of the range snap to the
// quarter-hour grid; a zero end time is default-filled from the
// configured duration. The range must be strictly increasing.
func (s *EventService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.Event, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, entities.ErrEmptyTitle
	}

	start := dates.RoundToQuarterHour(req.StartTime)
	end := req.EndTime
	if end.IsZero() {
		end = start.Add(time.Duration(s.cfg.DefaultEventDuration) * time.Minute)
	}
	end = dates.RoundToQuarterHour(end)
	if !end.After(start) {
		return nil, entities.ErrInvalidTimeRange
	}

	now := time.Now()
	event := &entities.Event{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		Location:    req.Location,
		Attendees:   req.Attendees,
		UserID:      s.cfg.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.log.Infow("Event created", "event_id", event.ID, "title", event.Title)

	return event, nil
}

// UpdateEvent merges a partial update into an event. ID and CreatedAt
// never change; the merged range is re-validated.
func (s *EventService) UpdateEvent(ctx context.Context, id string, req ports.UpdateEventRequest) (*entities.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, entities.ErrEmptyTitle
		}
		event.Title = title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = dates.RoundToQuarterHour(*req.StartTime)
	}
	if req.EndTime != nil {
		event.EndTime = dates.RoundToQuarterHour(*req.EndTime)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Attendees != nil {
		event.Attendees = req.Attendees
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, entities.ErrInvalidTimeRange
	}
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	s.log.Infow("Event updated", "event_id", event.ID, "title", event.Title)

	return event, nil
}

// DeleteEvent removes an event. The bool reports whether anything was
// actually deleted.
func (s *EventService) DeleteEvent(ctx context.Context, id string) (bool, error) {
	err := s.events.Delete(ctx, id)
	if errors.Is(err, entities.ErrEventNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	s.log.Infow("Event deleted", "event_id", id)
	return true, nil
}

// EventsInRange returns events whose start time falls within
// [start, end] inclusive.
func (s *EventService) EventsInRange(ctx context.Context, start, end time.Time) ([]entities.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	tr := ports.TimeRange{Start: start, End: end}
	inRange := events[:0]
	for _, e := range events {
		if tr.Contains(e.StartTime) {
			inRange = append(inRange, e)
		}
	}
	return inRange, nil
}

// EventsForWeek returns the events for the week containing t.
func (s *EventService) EventsForWeek(ctx context.Context, t time.Time) ([]entities.Event, error) {
	start, end := dates.WeekRange(t)
	return s.EventsInRange(ctx, start, end)
}
