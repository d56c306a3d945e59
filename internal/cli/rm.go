package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rmYesFlag bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task permanently",
	Long: `Delete a task by ID. There is no undo and no soft delete; the task is
removed permanently. Pass --yes to skip the confirmation prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}

		task, err := Orch.GetTask(id)
		if err != nil {
			return err
		}

		if !rmYesFlag {
			fmt.Printf("Delete task %d %q? This cannot be undone. [y/N]: ", task.ID, task.Title)
			reader := bufio.NewReader(os.Stdin)
			input, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading confirmation: %w", err)
			}
			if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := Orch.DeleteTask(id); err != nil {
			return err
		}

		fmt.Printf("Deleted task %d\n", id)
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVar(&rmYesFlag, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}
