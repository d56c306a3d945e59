package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskflow/internal/core"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

var (
	addDescFlag     string
	addPriorityFlag string
	addDueFlag      string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Long: `Create a new task with the given title.

Use --priority (low, medium, high; default medium), --desc for a
description, and --due YYYY-MM-DD for a deadline. New tasks start
active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}

		draft := models.TaskDraft{
			Title:       args[0],
			Description: addDescFlag,
			Priority:    models.Priority(addPriorityFlag),
		}
		if addDueFlag != "" {
			due, err := parseDueDate(addDueFlag)
			if err != nil {
				return err
			}
			draft.DueDate = due
		}

		task, err := Orch.CreateTask(draft)
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s", verr.Error())
		}
		if err != nil {
			return err
		}

		fmt.Printf("Created task %d: %s\n", task.ID, task.Title)
		return nil
	},
}

// parseDueDate parses a YYYY-MM-DD date into a UTC due date.
func parseDueDate(s string) (*time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid --due %q: expected YYYY-MM-DD", s)
	}
	d = d.UTC()
	return &d, nil
}

func init() {
	addCmd.Flags().StringVar(&addDescFlag, "desc", "", "task description")
	addCmd.Flags().StringVar(&addPriorityFlag, "priority", "medium", "priority: low, medium, high")
	addCmd.Flags().StringVar(&addDueFlag, "due", "", "due date (YYYY-MM-DD)")
	rootCmd.AddCommand(addCmd)
}
