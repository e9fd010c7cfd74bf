package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/weekplanner/core/internal/domain/dates"
	"github.com/weekplanner/core/internal/domain/entities"
	"github.com/weekplanner/core/internal/ports"
)

// NewEventCommand creates the event command tree.
func NewEventCommand() *cobra.Command {
	eventCmd := &cobra.Command{
		Use:   "event",
		Short: "Event management commands",
		Long:  "Create, list and delete calendar events",
	}

	eventCmd.AddCommand(newEventAddCommand())
	eventCmd.AddCommand(newEventListCommand())
	eventCmd.AddCommand(newEventWeekCommand())
	eventCmd.AddCommand(newEventRemoveCommand())

	return eventCmd
}

func newEventAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, _ := cmd.Flags().GetString("at")
			end, _ := cmd.Flags().GetString("end")
			duration, _ := cmd.Flags().GetInt("duration")
			description, _ := cmd.Flags().GetString("description")
			location, _ := cmd.Flags().GetString("location")
			attendees, _ := cmd.Flags().GetString("attendees")

			start, err := parseStartFlag(at)
			if err != nil {
				return err
			}

			req := ports.CreateEventRequest{
				Title:       args[0],
				Description: description,
				StartTime:   start,
				Location:    location,
			}
			if attendees != "" {
				req.Attendees = strings.Split(attendees, ",")
			}
			switch {
			case end != "":
				endTime, perr := dates.ParseLocalRounded(end)
				if perr != nil {
					return perr
				}
				req.EndTime = endTime
			case duration > 0:
				formatted, perr := dates.ComputeEndTime(dates.FormatLocal(start), duration)
				if perr != nil {
					return perr
				}
				endTime, perr := dates.ParseLocal(formatted)
				if perr != nil {
					return perr
				}
				req.EndTime = endTime
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			event, err := a.events.CreateEvent(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Added event %s: %s (%s - %s)\n",
				event.ID, event.Title, dates.FormatLocal(event.StartTime), dates.FormatLocal(event.EndTime))
			return nil
		},
	}

	cmd.Flags().String("at", "", "Start time (YYYY-MM-DDTHH:MM, required)")
	cmd.Flags().String("end", "", "End time (YYYY-MM-DDTHH:MM)")
	cmd.Flags().Int("duration", 0, "Duration in minutes, used when --end is absent")
	cmd.Flags().String("description", "", "Event description")
	cmd.Flags().String("location", "", "Event location")
	cmd.Flags().String("attendees", "", "Comma-separated attendee list")
	cmd.MarkFlagRequired("at")

	return cmd
}

func newEventListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every event",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			events, err := a.events.ListEvents(context.Background())
			if err != nil {
				return err
			}
			printEvents(events)
			return nil
		},
	}
}

func newEventWeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "List the events for the current week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			events, err := a.events.EventsForWeek(context.Background(), time.Now())
			if err != nil {
				return err
			}
			printEvents(events)
			return nil
		},
	}
}

func newEventRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			removed, err := a.events.DeleteEvent(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No event with id %s\n", args[0])
				return nil
			}
			fmt.Println("Event deleted.")
			return nil
		},
	}
}

func printEvents(events []entities.Event) {
	if len(events) == 0 {
		fmt.Println("No events.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, dates.FormatLocal(e.StartTime), dates.FormatLocal(e.EndTime), e.Location)
	}
	w.Flush()
}
