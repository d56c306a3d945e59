package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

var (
	editTitleFlag    string
	editDescFlag     string
	editPriorityFlag string
	editDueFlag      string
	editClearDueFlag bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing task",
	Long: `Edit a task by ID. Only the flags you pass change; everything else
is preserved. Use --clear-due to remove the due date.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}

		var patch models.TaskPatch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitleFlag
		}
		if cmd.Flags().Changed("desc") {
			patch.Description = &editDescFlag
		}
		if cmd.Flags().Changed("priority") {
			p := models.Priority(editPriorityFlag)
			patch.Priority = &p
		}
		if editClearDueFlag {
			patch.ClearDueDate = true
		} else if cmd.Flags().Changed("due") {
			due, err := parseDueDate(editDueFlag)
			if err != nil {
				return err
			}
			patch.DueDate = due
		}

		if patch.IsZero() {
			return fmt.Errorf("nothing to change: pass at least one of --title, --desc, --priority, --due, --clear-due")
		}

		task, err := Orch.UpdateTask(id, patch)
		if err != nil {
			return err
		}

		fmt.Printf("Updated task %d: %s\n", task.ID, task.Title)
		return nil
	},
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q: expected a positive integer", s)
	}
	return id, nil
}

func init() {
	editCmd.Flags().StringVar(&editTitleFlag, "title", "", "new title")
	editCmd.Flags().StringVar(&editDescFlag, "desc", "", "new description")
	editCmd.Flags().StringVar(&editPriorityFlag, "priority", "", "new priority: low, medium, high")
	editCmd.Flags().StringVar(&editDueFlag, "due", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editClearDueFlag, "clear-due", false, "remove the due date")
	rootCmd.AddCommand(editCmd)
}
