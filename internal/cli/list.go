package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

var (
	listStatusFlag string
	listSortFlag   string
	listSearchFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with optional filtering and sorting",
	Long: `List tasks, optionally narrowed by a status filter and a search string.

Status is one of: all, active, completed. Sort is one of: dueDate,
priority, createdAt, title. Search matches title and description,
case-insensitive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateViewFlags(listStatusFlag, listSortFlag); err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}

		Orch.SetFilters(query.StatusFilter(listStatusFlag), query.SortKey(listSortFlag))
		Orch.SetSearchNow(listSearchFlag)

		view := Orch.Snapshot()
		if len(view.Tasks) == 0 {
			fmt.Println("No tasks match.")
			return nil
		}

		printTaskTable(view.Tasks)
		fmt.Printf("\n%d of %d tasks shown (%d active, %d completed)\n",
			len(view.Tasks), view.Stats.Total, view.Stats.Active, view.Stats.Completed)
		return nil
	},
}

func validateViewFlags(status, sortBy string) error {
	switch query.StatusFilter(status) {
	case query.FilterAll, query.FilterActive, query.FilterCompleted:
	default:
		return fmt.Errorf("invalid --status %q: must be all, active, or completed", status)
	}
	switch query.SortKey(sortBy) {
	case query.SortDueDate, query.SortPriority, query.SortCreatedAt, query.SortTitle:
	default:
		return fmt.Errorf("invalid --sort %q: must be dueDate, priority, createdAt, or title", sortBy)
	}
	return nil
}

func printTaskTable(tasks []models.Task) {
	fmt.Printf("  %-4s %-3s %-40s %-8s %-12s %s\n", "ID", "", "TITLE", "PRI", "DUE", "CREATED")
	fmt.Printf("  %-4s %-3s %-40s %-8s %-12s %s\n", "---", "", "-----", "---", "---", "-------")
	for _, t := range tasks {
		check := "[ ]"
		if t.Status == models.StatusCompleted {
			check = "[x]"
		}
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Printf("  %-4d %-3s %-40s %-8s %-12s %s\n",
			t.ID, check, truncate(t.Title, 40), t.Priority, due,
			t.CreatedAt.Format("2006-01-02"))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	listCmd.Flags().StringVar(&listStatusFlag, "status", "all", "status filter: all, active, completed")
	listCmd.Flags().StringVar(&listSortFlag, "sort", "dueDate", "sort key: dueDate, priority, createdAt, title")
	listCmd.Flags().StringVar(&listSearchFlag, "search", "", "search text matched against title and description")
	rootCmd.AddCommand(listCmd)
}
