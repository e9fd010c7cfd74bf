package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// TaskService handles task-related operations: scheduled and backlog
// creation, partial updates, calendar range queries and due-date
// urgency views. It also keeps the frequent-task registry in sync with
// favorite-marked tasks.
type TaskService struct {
	tasks     ports.TaskRepository
	templates *FrequentTaskService
	cfg       config.PlannerConfig
	log       *logger.Logger
	validate  *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(tasks ports.TaskRepository, templates *FrequentTaskService, cfg config.PlannerConfig, log *logger.Logger) *TaskService {
	return &TaskService{
		tasks:     tasks,
		templates: templates,
		cfg:       cfg,
		log:       log.WithComponent("task_service"),
		validate:  validator.New(),
	}
}

// ListTasks returns every task.
func (s *TaskService) ListTasks(ctx context.Context) ([]entities.Task, error) {
	return s.tasks.List(ctx)
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// CreateScheduledTask creates a task placed on the calendar grid. The
// start time is snapped to the quarter-hour grid and the due date, if
// any, is normalized to the end of its day.
func (s *TaskService) CreateScheduledTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if req.StartTime == nil {
		return nil, fmt.Errorf("scheduled task requires a start time")
	}
	task, err := s.newTask(req)
	if err != nil {
		return nil, err
	}
	start := dates.RoundToQuarterHour(*req.StartTime)
	task.StartTime = &start

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.log.Infow("Task created", "task_id", task.ID, "title", task.Title)

	if task.IsFavorite {
		s.syncFavorite(ctx, task)
	}
	return task, nil
}

// CreateBacklogTask creates an unscheduled task. Any start time in the
// request is discarded; a backlog task never has one.
func (s *TaskService) CreateBacklogTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	task, err := s.newTask(req)
	if err != nil {
		return nil, err
	}
	task.StartTime = nil
	task.IsBacklog = true

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create backlog task: %w", err)
	}
	s.log.Infow("Backlog task created", "task_id", task.ID, "title", task.Title)

	if task.IsFavorite {
		s.syncFavorite(ctx, task)
	}
	return task, nil
}

func (s *TaskService) newTask(req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, entities.ErrEmptyTitle
	}

	category := req.Category
	if category == "" {
		category = entities.CategoryOther
	}
	if !category.IsValid() {
		return nil, entities.ErrInvalidCategory
	}
	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	now := time.Now()
	task := &entities.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    category,
		Priority:    priority,
		IsFavorite:  req.IsFavorite,
		UserID:      s.cfg.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.DueDate != nil {
		due := dates.EndOfDay(*req.DueDate)
		task.DueDate = &due
	}
	return task, nil
}

// UpdateTask merges a partial update into a task. ID and CreatedAt are
// never touched; UpdatedAt is refreshed. Scheduling fields move
// together so the backlog invariant (backlog ⇔ no start time) holds
// after every update.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasFavorite := task.IsFavorite

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, entities.ErrEmptyTitle
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, entities.ErrInvalidCategory
		}
		task.Category = *req.Category
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, entities.ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.ClearDue {
		task.DueDate = nil
	} else if req.DueDate != nil {
		due := dates.EndOfDay(*req.DueDate)
		task.DueDate = &due
	}

	// Backlog/schedule transitions are atomic with the flag.
	switch {
	case req.ClearStart, req.IsBacklog != nil && *req.IsBacklog:
		task.StartTime = nil
		task.IsBacklog = true
	case req.StartTime != nil:
		start := dates.RoundToQuarterHour(*req.StartTime)
		task.StartTime = &start
		task.IsBacklog = false
	case req.IsBacklog != nil && !*req.IsBacklog && task.StartTime != nil:
		task.IsBacklog = false
	}

	if req.IsFavorite != nil {
		task.IsFavorite = *req.IsFavorite
	}
	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	s.log.Infow("Task updated", "task_id", task.ID, "title", task.Title)

	if req.IsFavorite != nil {
		if *req.IsFavorite {
			s.syncFavorite(ctx, task)
		} else if wasFavorite {
			s.unsyncFavorite(ctx, task.Title)
		}
	}
	return task, nil
}

// DeleteTask removes a task. The bool reports whether anything was
// actually deleted; an unknown id is not an error.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	err := s.tasks.Delete(ctx, id)
	if errors.Is(err, entities.ErrTaskNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	s.log.Infow("Task deleted", "task_id", id)
	return true, nil
}

// ScheduleBacklogTask places a backlog task on the grid at startTime
// and clears its backlog flag.
func (s *TaskService) ScheduleBacklogTask(ctx context.Context, id string, startTime time.Time) (*entities.Task, error) {
	return s.UpdateTask(ctx, id, ports.UpdateTaskRequest{StartTime: &startTime})
}

// MoveTaskToBacklog removes a task from the grid, clearing its start
// time and setting the backlog flag.
func (s *TaskService) MoveTaskToBacklog(ctx context.Context, id string) (*entities.Task, error) {
	backlog := true
	return s.UpdateTask(ctx, id, ports.UpdateTaskRequest{IsBacklog: &backlog})
}

// MarkCompleted marks a task as done.
func (s *TaskService) MarkCompleted(ctx context.Context, id string) (*entities.Task, error) {
	done := true
	return s.UpdateTask(ctx, id, ports.UpdateTaskRequest{Completed: &done})
}

// MarkIncomplete marks a task as pending again.
func (s *TaskService) MarkIncomplete(ctx context.Context, id string) (*entities.Task, error) {
	done := false
	return s.UpdateTask(ctx, id, ports.UpdateTaskRequest{Completed: &done})
}

// BacklogTasks returns the unscheduled tasks.
func (s *TaskService) BacklogTasks(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	backlog := tasks[:0]
	for _, t := range tasks {
		if t.IsBacklog {
			backlog = append(backlog, t)
		}
	}
	return backlog, nil
}

// TasksInRange returns tasks whose start time falls within [start, end]
// inclusive. Backlog tasks have no start time and never appear on the
// calendar grid.
func (s *TaskService) TasksInRange(ctx context.Context, start, end time.Time) ([]entities.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	tr := ports.TimeRange{Start: start, End: end}
	inRange := tasks[:0]
	for _, t := range tasks {
		if t.StartTime != nil && tr.Contains(*t.StartTime) {
			inRange = append(inRange, t)
		}
	}
	return inRange, nil
}

// TasksForWeek returns the scheduled tasks for the week containing t.
func (s *TaskService) TasksForWeek(ctx context.Context, t time.Time) ([]entities.Task, error) {
	start, end := dates.WeekRange(t)
	return s.TasksInRange(ctx, start, end)
}

// DueDateInfo classifies a task's due-date urgency against the current
// clock.
func (s *TaskService) DueDateInfo(task *entities.Task) dates.DueDateInfo {
	return dates.ClassifyDueDate(task.DueDate, task.Completed, time.Now())
}

// DueSoonTasks returns pending tasks that are overdue or inside the
// due-soon window, most urgent first.
func (s *TaskService) DueSoonTasks(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	urgent := tasks[:0]
	for _, t := range tasks {
		info := dates.ClassifyDueDate(t.DueDate, t.Completed, now)
		if info.Status == dates.StatusOverdue || info.Status == dates.StatusDueSoon {
			urgent = append(urgent, t)
		}
	}
	sort.SliceStable(urgent, func(i, j int) bool {
		di := dates.ClassifyDueDate(urgent[i].DueDate, urgent[i].Completed, now).DaysUntilDue
		dj := dates.ClassifyDueDate(urgent[j].DueDate, urgent[j].Completed, now).DaysUntilDue
		if di != dj {
			return di < dj
		}
		return urgent[i].Priority.Rank() > urgent[j].Priority.Rank()
	})
	return urgent, nil
}

// syncFavorite mirrors a favorite task into the template registry:
// a case-insensitive title match bumps the existing template, anything
// else becomes a new one. Best-effort by title, not a foreign key;
// failures are logged and never block the task save.
func (s *TaskService) syncFavorite(ctx context.Context, task *entities.Task) {
	existing, err := s.templates.FindByTitle(ctx, task.Title)
	if err != nil {
		s.log.WithError(err).Warnw("Favorite sync lookup failed", "title", task.Title)
		return
	}
	if existing != nil {
		if err := s.templates.Use(ctx, existing.ID); err != nil {
			s.log.WithError(err).Warnw("Favorite sync use failed", "template_id", existing.ID)
		}
		return
	}
	_, err = s.templates.Add(ctx, ports.TemplateInput{
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Priority:    task.Priority,
	})
	if err != nil {
		s.log.WithError(err).Warnw("Favorite sync add failed", "title", task.Title)
	}
}

// unsyncFavorite removes the template matching an un-favorited task's
// title, if any.
func (s *TaskService) unsyncFavorite(ctx context.Context, title string) {
	existing, err := s.templates.FindByTitle(ctx, title)
	if err != nil || existing == nil {
		return
	}
	if _, err := s.templates.Remove(ctx, existing.ID); err != nil {
		s.log.WithError(err).Warnw("Favorite unsync failed", "template_id", existing.ID)
	}
}
