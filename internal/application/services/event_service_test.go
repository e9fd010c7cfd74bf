package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/ports"
)

func TestCreateEventDefaultsEndTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	event, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "Revisión semanal",
		StartTime: start,
	})
	assert.Nil(err)
	assert.True(event.StartTime.Equal(start))
	// Zero end time is filled from the configured default duration.
	assert.True(event.EndTime.Equal(start.Add(30 * time.Minute)))
	assert.Equal(30*time.Minute, event.Duration())
	assert.Equal("local-user", event.UserID)
}

func TestCreateEventRoundsBothEnds(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart().Add(7 * time.Minute)
	end := futureStart().Add(68 * time.Minute)
	event, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "Llamada con proveedor",
		StartTime: start,
		EndTime:   end,
	})
	assert.Nil(err)
	assert.Zero(event.StartTime.Minute() % 15)
	assert.Zero(event.EndTime.Minute() % 15)
}

func TestCreateEventRejectsBadRange(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	end := start.Add(-time.Hour)
	_, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "Imposible",
		StartTime: start,
		EndTime:   end,
	})
	assert.ErrorIs(err, entities.ErrInvalidTimeRange)

	// End equal to start is also invalid.
	_, err = f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "Instantáneo",
		StartTime: start,
		EndTime:   start,
	})
	assert.ErrorIs(err, entities.ErrInvalidTimeRange)

	_, err = f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "  ",
		StartTime: start,
	})
	assert.NotNil(err)
}

func TestUpdateEventRevalidatesRange(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	event, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "Cita médica",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.Nil(err)

	// Moving the start past the end must fail.
	lateStart := start.Add(2 * time.Hour)
	_, err = f.events.UpdateEvent(ctx, event.ID, ports.UpdateEventRequest{StartTime: &lateStart})
	assert.ErrorIs(err, entities.ErrInvalidTimeRange)

	location := "Sala 3"
	updated, err := f.events.UpdateEvent(ctx, event.ID, ports.UpdateEventRequest{Location: &location})
	assert.Nil(err)
	assert.Equal("Sala 3", updated.Location)
	assert.Equal(event.ID, updated.ID)
	assert.True(updated.CreatedAt.Equal(event.CreatedAt))
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	event, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "Para borrar",
		StartTime: start,
	})
	assert.Nil(err)

	removed, err := f.events.DeleteEvent(ctx, event.ID)
	assert.Nil(err)
	assert.True(removed)

	removed, err = f.events.DeleteEvent(ctx, event.ID)
	assert.Nil(err)
	assert.False(removed)
}

func TestEventsInRangeInclusive(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	event, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "En el límite",
		StartTime: start,
	})
	assert.Nil(err)

	inRange, err := f.events.EventsInRange(ctx, event.StartTime, event.StartTime)
	assert.Nil(err)
	found := false
	for _, got := range inRange {
		if got.ID == event.ID {
			found = true
		}
	}
	assert.True(found)

	// A window ending just before the event excludes it.
	inRange, err = f.events.EventsInRange(ctx, event.StartTime.Add(-time.Hour), event.StartTime.Add(-time.Minute))
	assert.Nil(err)
	for _, got := range inRange {
		assert.NotEqual(event.ID, got.ID)
	}
}

func TestEventsForWeek(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	event, err := f.events.CreateEvent(ctx, ports.CreateEventRequest{
		Title:     "La semana que viene",
		StartTime: start,
	})
	assert.Nil(err)

	week, err := f.events.EventsForWeek(ctx, start)
	assert.Nil(err)
	found := false
	for _, got := range week {
		if got.ID == event.ID {
			found = true
		}
	}
	assert.True(found)
}
