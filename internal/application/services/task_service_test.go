package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weekplanner/core/internal/adapters/repository"
	"github.com/weekplanner/core/internal/application/services"
	"github.com/weekplanner/core/internal/domain/dates"
	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/config"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/infrastructure/storage"
	"github.com/weekplanner/core/internal/ports"
)

type fixture struct {
	tasks    *services.TaskService
	events   *services.EventService
	frequent *services.FrequentTaskService
}

func newFixture() *fixture {
	kv := storage.NewMemoryKV()
	log := logger.NewNop()
	repos := repository.New(kv, log, "local-user")
	cfg := config.PlannerConfig{
		UserID:               "local-user",
		DefaultEventDuration: 30,
		DueSoonWindowDays:    3,
	}
	frequent := services.NewFrequentTaskService(repos.FrequentTasks, log)
	return &fixture{
		tasks:    services.NewTaskService(repos.Tasks, frequent, cfg, log),
		events:   services.NewEventService(repos.Events, cfg, log),
		frequent: frequent,
	}
}

func futureStart() time.Time {
	return dates.RoundToQuarterHour(time.Now().AddDate(0, 0, 7))
}

func TestCreateScheduledTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart().Add(8 * time.Minute)
	task, err := f.tasks.CreateScheduledTask(ctx, ports.CreateTaskRequest{
		Title:     "Preparar presentación",
		StartTime: &start,
		Category:  entities.CategoryWork,
		Priority:  entities.PriorityHigh,
	})
	assert.Nil(err)
	assert.NotEmpty(task.ID)
	assert.False(task.IsBacklog)
	assert.NotNil(task.StartTime)
	// Start snapped to the quarter-hour grid.
	assert.Zero(task.StartTime.Minute() % 15)
	assert.Equal("local-user", task.UserID)

	_, err = f.tasks.CreateScheduledTask(ctx, ports.CreateTaskRequest{Title: "Sin hora"})
	assert.NotNil(err)
}

func TestCreateTaskValidation(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	_, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "   "})
	assert.ErrorIs(err, entities.ErrEmptyTitle)

	_, err = f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "x", Category: "casa"})
	assert.ErrorIs(err, entities.ErrInvalidCategory)

	_, err = f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "x", Priority: "mega"})
	assert.ErrorIs(err, entities.ErrInvalidPriority)

	// Empty enums default rather than fail.
	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "x"})
	assert.Nil(err)
	assert.Equal(entities.CategoryOther, task.Category)
	assert.Equal(entities.PriorityMedium, task.Priority)
}

func TestBacklogInvariant(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{
		Title:     "Ordenar el garaje",
		StartTime: &start, // discarded: backlog tasks are never scheduled
	})
	assert.Nil(err)
	assert.True(task.IsBacklog)
	assert.Nil(task.StartTime)

	scheduled, err := f.tasks.ScheduleBacklogTask(ctx, task.ID, start)
	assert.Nil(err)
	assert.False(scheduled.IsBacklog)
	assert.NotNil(scheduled.StartTime)
	assert.True(scheduled.StartTime.Equal(start))

	back, err := f.tasks.MoveTaskToBacklog(ctx, task.ID)
	assert.Nil(err)
	assert.True(back.IsBacklog)
	assert.Nil(back.StartTime)
}

func TestUpdateTaskImmutability(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "Original"})
	assert.Nil(err)

	title := "Renombrada"
	updated, err := f.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Title: &title})
	assert.Nil(err)
	assert.Equal(task.ID, updated.ID)
	assert.True(updated.CreatedAt.Equal(task.CreatedAt))
	assert.False(updated.UpdatedAt.Before(task.UpdatedAt))
	assert.Equal("Renombrada", updated.Title)

	_, err = f.tasks.UpdateTask(ctx, "missing", ports.UpdateTaskRequest{Title: &title})
	assert.ErrorIs(err, entities.ErrTaskNotFound)
}

func TestUpdateTaskDueDateNormalizedToEndOfDay(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "Con vencimiento"})
	assert.Nil(err)

	due := time.Date(2026, time.October, 5, 10, 30, 0, 0, time.Local)
	updated, err := f.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{DueDate: &due})
	assert.Nil(err)
	assert.Equal(23, updated.DueDate.Hour())
	assert.Equal(59, updated.DueDate.Minute())
	assert.Equal(59, updated.DueDate.Second())
	assert.Equal(5, updated.DueDate.Day())

	cleared, err := f.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{ClearDue: true})
	assert.Nil(err)
	assert.Nil(cleared.DueDate)
}

func TestMarkCompletedAndIncomplete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "Terminar lectura"})
	assert.Nil(err)
	assert.False(task.Completed)

	done, err := f.tasks.MarkCompleted(ctx, task.ID)
	assert.Nil(err)
	assert.True(done.Completed)

	undone, err := f.tasks.MarkIncomplete(ctx, task.ID)
	assert.Nil(err)
	assert.False(undone.Completed)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "Efímera"})
	assert.Nil(err)

	removed, err := f.tasks.DeleteTask(ctx, task.ID)
	assert.Nil(err)
	assert.True(removed)

	removed, err = f.tasks.DeleteTask(ctx, task.ID)
	assert.Nil(err)
	assert.False(removed)
}

func TestTasksInRangeExcludesBacklog(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	backlog, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "Nunca en el calendario"})
	assert.Nil(err)

	start := futureStart()
	scheduled, err := f.tasks.CreateScheduledTask(ctx, ports.CreateTaskRequest{
		Title:     "Sí en el calendario",
		StartTime: &start,
	})
	assert.Nil(err)

	// A range wide enough to catch everything with a start time.
	from := time.Now().AddDate(-10, 0, 0)
	to := time.Now().AddDate(10, 0, 0)
	inRange, err := f.tasks.TasksInRange(ctx, from, to)
	assert.Nil(err)

	ids := map[string]bool{}
	for _, task := range inRange {
		ids[task.ID] = true
	}
	assert.True(ids[scheduled.ID])
	assert.False(ids[backlog.ID])
}

func TestTasksInRangeInclusiveBounds(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	start := futureStart()
	task, err := f.tasks.CreateScheduledTask(ctx, ports.CreateTaskRequest{
		Title:     "Justo en el borde",
		StartTime: &start,
	})
	assert.Nil(err)

	// Both bounds equal to the start time still match.
	inRange, err := f.tasks.TasksInRange(ctx, *task.StartTime, *task.StartTime)
	assert.Nil(err)
	found := false
	for _, got := range inRange {
		if got.ID == task.ID {
			found = true
		}
	}
	assert.True(found)
}

func TestBacklogTasks(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	_, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: "Pendiente sin fecha"})
	assert.Nil(err)

	backlog, err := f.tasks.BacklogTasks(ctx)
	assert.Nil(err)
	assert.NotEmpty(backlog)
	for _, task := range backlog {
		assert.True(task.IsBacklog)
		assert.Nil(task.StartTime)
	}
}

func TestDueSoonTasksOrdering(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	addWithDue := func(title string, dayOffset int) {
		due := dates.EndOfDay(time.Now().AddDate(0, 0, dayOffset))
		_, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: title, DueDate: &due})
		assert.Nil(err)
	}
	addWithDue("vencida", -2)
	addWithDue("hoy", 0)
	addWithDue("pasado mañana", 2)
	addWithDue("lejana", 30) // on time, excluded

	urgent, err := f.tasks.DueSoonTasks(ctx)
	assert.Nil(err)

	var titles []string
	for _, task := range urgent {
		if task.DueDate != nil {
			titles = append(titles, task.Title)
		}
	}
	assert.Contains(titles, "vencida")
	assert.Contains(titles, "hoy")
	assert.Contains(titles, "pasado mañana")
	assert.NotContains(titles, "lejana")

	// Most urgent first.
	first := f.tasks.DueDateInfo(&urgent[0])
	last := f.tasks.DueDateInfo(&urgent[len(urgent)-1])
	assert.LessOrEqual(first.DaysUntilDue, last.DaysUntilDue)
}

func TestFavoriteSyncCreatesAndIncrements(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	countByTitle := func(title string) (int, entities.FrequentTask) {
		templates, err := f.frequent.List(ctx)
		assert.Nil(err)
		var match entities.FrequentTask
		n := 0
		for _, template := range templates {
			if template.Title == title {
				n++
				match = template
			}
		}
		return n, match
	}

	const title = "Regar las plantas"
	_, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: title, IsFavorite: true})
	assert.Nil(err)

	n, template := countByTitle(title)
	assert.Equal(1, n)
	assert.Equal(0, template.UsageCount)

	// Same title again: the existing template is bumped, not duplicated.
	_, err = f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: title, IsFavorite: true})
	assert.Nil(err)

	n, template = countByTitle(title)
	assert.Equal(1, n)
	assert.Equal(1, template.UsageCount)
}

func TestFavoriteToggleOffRemovesTemplate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	f := newFixture()
	ctx := context.Background()

	const title = "Sacar la basura"
	task, err := f.tasks.CreateBacklogTask(ctx, ports.CreateTaskRequest{Title: title, IsFavorite: true})
	assert.Nil(err)

	match, err := f.frequent.FindByTitle(ctx, title)
	assert.Nil(err)
	assert.NotNil(match)

	off := false
	_, err = f.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{IsFavorite: &off})
	assert.Nil(err)

	match, err = f.frequent.FindByTitle(ctx, title)
	assert.Nil(err)
	assert.Nil(match)
}
