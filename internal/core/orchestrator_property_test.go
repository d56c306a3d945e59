package core

import (
	"testing"

	"golang.org/x/text/language"
	"pgregory.net/rapid"

	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// Under any sequence of successful mutations, the derived stats satisfy
// total == active + completed and match the store's contents.
func TestOrchestrator_StatsInvariantProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := newFakeStore()
		orch := NewOrchestrator(store, query.NewEngine(language.English), nil, nil, 0)
		defer orch.Close()
		if err := orch.LoadTasks(); err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		var ids []int
		nOps := rapid.IntRange(1, 25).Draw(rt, "nOps")
		for i := 0; i < nOps; i++ {
			op := rapid.IntRange(0, 2).Draw(rt, "op")
			switch {
			case op == 0 || len(ids) == 0:
				task, err := orch.CreateTask(models.TaskDraft{Title: "task"})
				if err != nil {
					rt.Fatalf("unexpected error: %v", err)
				}
				ids = append(ids, task.ID)
			case op == 1:
				idx := rapid.IntRange(0, len(ids)-1).Draw(rt, "toggleIdx")
				completed := rapid.Bool().Draw(rt, "completed")
				if _, err := orch.ToggleComplete(ids[idx], completed); err != nil {
					rt.Fatalf("unexpected error: %v", err)
				}
			default:
				idx := rapid.IntRange(0, len(ids)-1).Draw(rt, "deleteIdx")
				if err := orch.DeleteTask(ids[idx]); err != nil {
					rt.Fatalf("unexpected error: %v", err)
				}
				ids = append(ids[:idx], ids[idx+1:]...)
			}

			snap := orch.Snapshot()
			if snap.Stats.Total != snap.Stats.Active+snap.Stats.Completed {
				rt.Fatalf("stats inconsistent: %+v", snap.Stats)
			}
			if snap.Stats.Total != len(ids) {
				rt.Fatalf("expected %d tasks, stats say %d", len(ids), snap.Stats.Total)
			}
		}
	})
}
