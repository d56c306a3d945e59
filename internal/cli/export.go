package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// allTasksParams is the view used for snapshots: everything, newest
// first.
func allTasksParams() query.Params {
	return query.Params{Status: query.FilterAll, SortBy: query.SortCreatedAt}
}

// snapshotFile is the top-level structure of an exported task snapshot.
type snapshotFile struct {
	Version string        `yaml:"version"`
	Tasks   []models.Task `yaml:"tasks"`
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the full task set to a YAML snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}

		// Export the whole set regardless of current view filters.
		tasks, err := Orch.Query(allTasksParams())
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(snapshotFile{Version: "1.0", Tasks: tasks})
		if err != nil {
			return fmt.Errorf("exporting tasks: marshaling YAML: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0o600); err != nil {
			return fmt.Errorf("exporting tasks: writing %s: %w", args[0], err)
		}

		fmt.Printf("Exported %d tasks to %s\n", len(tasks), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create tasks from a YAML snapshot",
	Long: `Read a snapshot produced by 'taskflow export' and create its tasks in
the configured store. IDs are reassigned by the store; completion
state is preserved by toggling after creation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("importing tasks: reading %s: %w", args[0], err)
		}
		var snap snapshotFile
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("importing tasks: parsing YAML: %w", err)
		}

		if err := ensureLoaded(); err != nil {
			return err
		}

		imported := 0
		for _, t := range snap.Tasks {
			created, err := Orch.CreateTask(models.TaskDraft{
				Title:       t.Title,
				Description: t.Description,
				Priority:    t.Priority,
				DueDate:     t.DueDate,
			})
			if err != nil {
				return fmt.Errorf("importing task %q: %w", t.Title, err)
			}
			if t.Status == models.StatusCompleted {
				if _, err := Orch.ToggleComplete(created.ID, true); err != nil {
					return fmt.Errorf("importing task %q: restoring completion: %w", t.Title, err)
				}
			}
			imported++
		}

		fmt.Printf("Imported %d tasks from %s\n", imported, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
