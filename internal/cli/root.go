package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow - single-user task management",
	Long: `TaskFlow is a single-user task manager: create, search, filter, and
sort tasks with priorities, due dates, and completion tracking.

Tasks persist either in a local file or through a remote record
service, selected in .taskflow.yaml. Run 'taskflow browse' for the
interactive view or use the one-shot commands below.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskflow %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureLoaded loads the task set into the orchestrator for one-shot
// command invocations.
func ensureLoaded() error {
	if Orch == nil {
		return fmt.Errorf("orchestrator not initialized")
	}
	if err := Orch.LoadTasks(); err != nil {
		return fmt.Errorf("loading tasks (retry with any command): %w", err)
	}
	return nil
}
