package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/taskflow/internal/observability"
)

var statsSinceFlag string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts and recent activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}

		view := Orch.Snapshot()
		fmt.Printf("Tasks: %d total, %d active, %d completed\n",
			view.Stats.Total, view.Stats.Active, view.Stats.Completed)

		if EventLog == nil {
			return nil
		}

		since, err := parseSince(statsSinceFlag)
		if err != nil {
			return err
		}
		events, err := EventLog.Read(observability.EventFilter{Since: &since})
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}

		counts := map[string]int{}
		for _, e := range events {
			counts[e.Type]++
		}
		fmt.Printf("\nActivity since %s:\n", since.Format("2006-01-02"))
		fmt.Printf("  created:   %d\n", counts["task.created"])
		fmt.Printf("  updated:   %d\n", counts["task.updated"])
		fmt.Printf("  completed: %d\n", counts["task.completed"])
		fmt.Printf("  reopened:  %d\n", counts["task.reopened"])
		fmt.Printf("  deleted:   %d\n", counts["task.deleted"])
		return nil
	},
}

// parseSince parses durations like "7d", "24h", "30d" into a point in
// the past.
func parseSince(s string) (time.Time, error) {
	var n int
	var unit string
	if _, err := fmt.Sscanf(s, "%d%s", &n, &unit); err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid --since %q: expected forms like 7d or 24h", s)
	}
	switch unit {
	case "d":
		return time.Now().UTC().Add(-time.Duration(n) * 24 * time.Hour), nil
	case "h":
		return time.Now().UTC().Add(-time.Duration(n) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("invalid --since unit %q: use d or h", unit)
	}
}

func init() {
	statsCmd.Flags().StringVar(&statsSinceFlag, "since", "7d", "activity window (e.g. 7d, 24h)")
	rootCmd.AddCommand(statsCmd)
}
