package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleTask(args[0], true)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a completed task as active again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleTask(args[0], false)
	},
}

func toggleTask(arg string, completed bool) error {
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}
	if err := ensureLoaded(); err != nil {
		return err
	}

	task, err := Orch.ToggleComplete(id, completed)
	if err != nil {
		return err
	}

	if completed {
		fmt.Printf("Completed task %d: %s\n", task.ID, task.Title)
	} else {
		fmt.Printf("Reopened task %d: %s\n", task.ID, task.Title)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
}
