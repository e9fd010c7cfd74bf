package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/weekplanner/core/internal/domain/entities"
)

// NewFrequentCommand creates the frequent-task command tree.
func NewFrequentCommand() *cobra.Command {
	frequentCmd := &cobra.Command{
		Use:   "frequent",
		Short: "Frequent-task template commands",
		Long:  "Browse, search and rank the reusable task templates",
	}

	frequentCmd.AddCommand(newFrequentListCommand())
	frequentCmd.AddCommand(newFrequentTopCommand())
	frequentCmd.AddCommand(newFrequentRecentCommand())
	frequentCmd.AddCommand(newFrequentSearchCommand())
	frequentCmd.AddCommand(newFrequentUseCommand())
	frequentCmd.AddCommand(newFrequentRemoveCommand())

	return frequentCmd
}

func newFrequentListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			var templates []entities.FrequentTask
			if category == "" {
				templates, err = a.frequent.List(context.Background())
			} else {
				cat, perr := parseCategoryFlag(category)
				if perr != nil {
					return perr
				}
				templates, err = a.frequent.ByCategory(context.Background(), cat)
			}
			if err != nil {
				return err
			}
			printTemplates(templates)
			return nil
		},
	}
	cmd.Flags().String("category", "", "Only show templates in this category")
	return cmd
}

func newFrequentTopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the most used templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			templates, err := a.frequent.MostUsed(context.Background(), limit)
			if err != nil {
				return err
			}
			printTemplates(templates)
			return nil
		},
	}
	cmd.Flags().Int("limit", 5, "Maximum number of templates")
	return cmd
}

func newFrequentRecentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently used templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			templates, err := a.frequent.RecentlyUsed(context.Background(), limit)
			if err != nil {
				return err
			}
			printTemplates(templates)
			return nil
		},
	}
	cmd.Flags().Int("limit", 5, "Maximum number of templates")
	return cmd
}

func newFrequentSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search templates by title, description or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			templates, err := a.frequent.Search(context.Background(), args[0])
			if err != nil {
				return err
			}
			printTemplates(templates)
			return nil
		},
	}
}

func newFrequentUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Record a use of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.frequent.Use(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Template use recorded.")
			return nil
		},
	}
}

func newFrequentRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			removed, err := a.frequent.Remove(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("No template with id %s\n", args[0])
				return nil
			}
			fmt.Println("Template deleted.")
			return nil
		},
	}
}

func printTemplates(templates []entities.FrequentTask) {
	if len(templates) == 0 {
		fmt.Println("No templates.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRIORITY\tUSES\tEST. MIN")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			t.ID, t.Title, t.Category, t.Priority, t.UsageCount, t.EstimatedDuration)
	}
	w.Flush()
}
