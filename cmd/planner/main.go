package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/weekplanner/core/cmd/planner/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Personal weekly planner",
		Long:  `WeekPlanner is a personal weekly planner: tasks and events on a week grid, a backlog of unscheduled tasks, due-date urgency tracking and reusable frequent-task templates, all persisted locally.`,
	}

	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewEventCommand())
	rootCmd.AddCommand(commands.NewFrequentCommand())
	rootCmd.AddCommand(commands.NewDueCommand())
	rootCmd.AddCommand(commands.NewClearCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
