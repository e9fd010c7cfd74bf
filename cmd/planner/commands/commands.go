// Package commands wires the planner services behind the cobra CLI.
// The CLI plays the role of the UI layer: it only talks to the
// services, never to storage directly.
package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/weekplanner/core/internal/adapters/repository"
	"github.com/weekplanner/core/internal/application/services"
	"github.com/weekplanner/core/internal/domain/dates"
	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/infrastructure/config"
	"github.com/weekplanner/core/internal/infrastructure/logger"
	"github.com/weekplanner/core/internal/infrastructure/storage"
)

// app bundles everything a command needs at run time.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	kv       storage.KV
	repos    *repository.Repositories
	tasks    *services.TaskService
	events   *services.EventService
	frequent *services.FrequentTaskService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	repos := repository.New(kv, log, cfg.Planner.UserID)
	frequent := services.NewFrequentTaskService(repos.FrequentTasks, log)

	return &app{
		cfg:      cfg,
		log:      log,
		kv:       kv,
		repos:    repos,
		tasks:    services.NewTaskService(repos.Tasks, frequent, cfg.Planner, log),
		events:   services.NewEventService(repos.Events, cfg.Planner, log),
		frequent: frequent,
	}, nil
}

func (a *app) close() {
	a.kv.Close()
	a.log.Close()
}

// parseStartFlag parses a datetime-local flag value, snaps it to the
// quarter-hour grid and refuses slots before the current grid slot.
// Scheduling in the past is a policy refusal at the input boundary.
func parseStartFlag(value string) (time.Time, error) {
	t, err := dates.ParseLocalRounded(value)
	if err != nil {
		return time.Time{}, err
	}
	min, err := dates.ParseLocal(dates.MinSelectableLocal(time.Now()))
	if err != nil {
		return time.Time{}, err
	}
	if t.Before(min) {
		return time.Time{}, entities.ErrStartTimeInPast
	}
	return t, nil
}

func parseCategoryFlag(value string) (entities.Category, error) {
	if value == "" {
		return entities.CategoryOther, nil
	}
	c := entities.Category(strings.ToLower(value))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q (want one of %v)", entities.ErrInvalidCategory, value, entities.Categories)
	}
	return c, nil
}

func parsePriorityFlag(value string) (entities.Priority, error) {
	if value == "" {
		return entities.PriorityMedium, nil
	}
	p := entities.Priority(strings.ToLower(value))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q (want one of %v)", entities.ErrInvalidPriority, value, entities.Priorities)
	}
	return p, nil
}

// NewDueCommand creates the due command, the due-soon alert view.
func NewDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Show overdue and due-soon tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			tasks, err := a.tasks.DueSoonTasks(context.Background())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No hay tareas próximas a vencer.")
				return nil
			}
			for _, t := range tasks {
				info := a.tasks.DueDateInfo(&t)
				fmt.Printf("%s %s  %s (%s)\n", info.Style.Icon, info.Message, t.Title, t.Priority)
			}
			return nil
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all planner data",
		Long:  "Delete every stored collection. The next access reseeds the sample data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.repos.ClearAll(context.Background()); err != nil {
				return err
			}
			fmt.Println("All planner data cleared.")
			return nil
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print WeekPlanner version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("WeekPlanner Core v1.0.0")
		},
	}
}
