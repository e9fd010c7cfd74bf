package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/weekplanner/core/internal/domain/dates"
	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/ports"
)

// NewTaskCommand creates the task command tree.
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
		Long:  "Create, list, schedule and complete tasks",
	}

	taskCmd.AddCommand(newTaskAddCommand())
	taskCmd.AddCommand(newTaskListCommand())
	taskCmd.AddCommand(newTaskWeekCommand())
	taskCmd.AddCommand(newTaskBacklogCommand())
	taskCmd.AddCommand(newTaskScheduleCommand())
	taskCmd.AddCommand(newTaskUnscheduleCommand())
	taskCmd.AddCommand(newTaskDoneCommand())
	taskCmd.AddCommand(newTaskUndoneCommand())
	taskCmd.AddCommand(newTaskRemoveCommand())

	return taskCmd
}

func newTaskAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long:  "Create a scheduled task with --at, or a backlog task without it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("at")
			due, _ := cmd.Flags().GetString("due")
			description, _ := cmd.Flags().GetString("description")
			category, _ := cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetString("priority")
			favorite, _ := cmd.Flags().GetBool("favorite")

			cat, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			prio, err := parsePriorityFlag(priority)
			if err != nil {
				return err
			}

			req := ports.CreateTaskRequest{
				Title:       args[0],
				Description: description,
				Category:    cat,
				Priority:    prio,
				IsFavorite:  favorite,
			}
			if due != "" {
				d, err := dates.ParseDueDate(due)
				if err != nil {
					return err
				}
				req.DueDate = &d
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			var task *entities.Task
			if at == "" {
				task, err = a.tasks.CreateBacklogTask(context.Background(), req)
			} else {
				start, perr := parseStartFlag(at)
				if perr != nil {
					return perr
				}
				req.StartTime = &start
				task, err = a.tasks.CreateScheduledTask(context.Background(), req)
			}
			if err != nil {
				return err
			}

			if task.IsBacklog {
				fmt.Printf("Added backlog task %s: %s\n", task.ID, task.Title)
			} else {
				fmt.Printf("Added task %s: %s at %s\n", task.ID, task.Title, dates.FormatLocal(*task.StartTime))
			}
			return nil
		},
	}

	cmd.Flags().String("at", "", "Start time (YYYY-MM-DDTHH:MM, snapped to the quarter-hour grid)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("category", "", "Category (work, personal, health, education, social, other)")
	cmd.Flags().String("priority", "", "Priority (low, medium, high, urgent)")
	cmd.Flags().Bool("favorite", false, "Mark as favorite; mirrors the task into the frequent-task registry")

	return cmd
}

func newTaskListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			tasks, err := a.tasks.ListTasks(context.Background())
			if err != nil {
				return err
			}
			printTasks(a, tasks)
			return nil
		},
	}
}

func newTaskWeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "List the tasks scheduled for the current week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			tasks, err := a.tasks.TasksForWeek(context.Background(), time.Now())
			if err != nil {
				return err
			}
			printTasks(a, tasks)
			return nil
		},
	}
}

func newTaskBacklogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backlog",
		Short: "List the unscheduled backlog tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			tasks, err := a.tasks.BacklogTasks(context.Background())
			if err != nil {
				return err
			}
			printTasks(a, tasks)
			return nil
		},
	}
}

func newTaskScheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <id> <start-time>",
		Short: "Place a backlog task on the calendar grid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseStartFlag(args[1])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			task, err := a.tasks.ScheduleBacklogTask(context.Background(), args[0], start)
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled %s at %s\n", task.Title, dates.FormatLocal(*task.StartTime))
			return nil
		},
	}
}

func newTaskUnscheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule <id>",
		Short: "Move a task back to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			task, err := a.tasks.MoveTaskToBacklog(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Moved %s to the backlog\n", task.Title)
			return nil
		},
	}
}

func newTaskDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			task, err := a.tasks.MarkCompleted(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Completed %s\n", task.Title)
			return nil
		},
	}
}

func newTaskUndoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undone <id>",
		Short: "Mark a task as pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			task, err := a.tasks.MarkIncomplete(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Reopened %s\n", task.Title)
			return nil
		},
	}
}

func newTaskRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			removed, err := a.tasks.DeleteTask(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No task with id %s\n", args[0])
				return nil
			}
			fmt.Println("Task deleted.")
			return nil
		},
	}
}

func printTasks(a *app, tasks []entities.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTART\tCATEGORY\tPRIORITY\tSTATE\tDUE")
	for _, t := range tasks {
		start := "-"
		if t.StartTime != nil {
			start = dates.FormatLocal(*t.StartTime)
		}
		state := "pending"
		if t.Completed {
			state = "done"
		} else if t.IsBacklog {
			state = "backlog"
		}
		due := ""
		if info := a.tasks.DueDateInfo(&t); info.Status != dates.StatusNoDueDate {
			due = info.Message
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, start, t.Category, t.Priority, state, due)
	}
	w.Flush()
}
