package query

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(language.English)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func fixtureTasks() []models.Task {
	return []models.Task{
		{
			ID: 1, Title: "Buy milk", Description: "Two liters",
			Priority: models.PriorityLow, Status: models.StatusActive,
			DueDate:   datePtr(2026, 9, 10),
			CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, Title: "Submit report", Description: "Quarterly numbers",
			Priority: models.PriorityHigh, Status: models.StatusActive,
			DueDate:   datePtr(2026, 9, 5),
			CreatedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: 3, Title: "Monday report", Description: "Weekly standup notes",
			Priority: models.PriorityMedium, Status: models.StatusCompleted,
			CreatedAt: time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
		},
	}
}

func idsOf(tasks []models.Task) []int {
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func assertIDs(t *testing.T, got []models.Task, want ...int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, idsOf(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected ids %v, got %v", want, idsOf(got))
		}
	}
}

func TestApply_NoParamsKeepsEverything(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Apply(fixtureTasks(), Params{Status: FilterAll, SortBy: SortCreatedAt})
	if len(got) != 3 {
		t.Fatalf("expected all 3 tasks, got %d", len(got))
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	eng := newTestEngine(t)
	tests := []struct {
		name   string
		search string
		want   []int
	}{
		{"lowercase matches title", "milk", []int{1}},
		{"uppercase matches title", "MILK", []int{1}},
		{"matches description", "liters", []int{1}},
		{"substring inside a word", "day", []int{3}},
		{"matches several tasks", "report", []int{2, 3}},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Apply(fixtureTasks(), Params{Search: tt.search, Status: FilterAll, SortBy: SortCreatedAt})
			if len(got) != len(tt.want) {
				t.Fatalf("expected ids %v, got %v", tt.want, idsOf(got))
			}
			for _, id := range tt.want {
				found := false
				for _, task := range got {
					if task.ID == id {
						found = true
					}
				}
				if !found {
					t.Fatalf("expected ids %v, got %v", tt.want, idsOf(got))
				}
			}
		})
	}
}

func TestApply_StatusFilterIsExact(t *testing.T) {
	eng := newTestEngine(t)

	active := eng.Apply(fixtureTasks(), Params{Status: FilterActive, SortBy: SortCreatedAt})
	for _, task := range active {
		if task.Status != models.StatusActive {
			t.Fatalf("active filter leaked task %d with status %q", task.ID, task.Status)
		}
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active tasks, got %d", len(active))
	}

	completed := eng.Apply(fixtureTasks(), Params{Status: FilterCompleted, SortBy: SortCreatedAt})
	assertIDs(t, completed, 3)
}

func TestApply_SearchAndFilterCompose(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Apply(fixtureTasks(), Params{Search: "report", Status: FilterActive, SortBy: SortCreatedAt})
	assertIDs(t, got, 2)
}

func TestApply_SortByDueDateNilLast(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Apply(fixtureTasks(), Params{Status: FilterAll, SortBy: SortDueDate})
	// Soonest due date first; the task with no due date comes last.
	assertIDs(t, got, 2, 1, 3)
}

func TestApply_SortByPriorityHighFirst(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Apply(fixtureTasks(), Params{Status: FilterAll, SortBy: SortPriority})
	assertIDs(t, got, 2, 3, 1)
}

func TestApply_SortByCreatedAtNewestFirst(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Apply(fixtureTasks(), Params{Status: FilterAll, SortBy: SortCreatedAt})
	assertIDs(t, got, 3, 2, 1)
}

func TestApply_SortByTitleUsesCollation(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Apply(fixtureTasks(), Params{Status: FilterAll, SortBy: SortTitle})
	assertIDs(t, got, 1, 3, 2)
}

func TestApply_SortIsStableForTies(t *testing.T) {
	eng := newTestEngine(t)
	tasks := []models.Task{
		{ID: 1, Title: "first", Priority: models.PriorityMedium, Status: models.StatusActive},
		{ID: 2, Title: "second", Priority: models.PriorityMedium, Status: models.StatusActive},
		{ID: 3, Title: "third", Priority: models.PriorityMedium, Status: models.StatusActive},
	}
	got := eng.Apply(tasks, Params{Status: FilterAll, SortBy: SortPriority})
	assertIDs(t, got, 1, 2, 3)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	eng := newTestEngine(t)
	tasks := fixtureTasks()
	eng.Apply(tasks, Params{Search: "report", Status: FilterCompleted, SortBy: SortTitle})

	if tasks[0].ID != 1 || tasks[1].ID != 2 || tasks[2].ID != 3 {
		t.Fatalf("input slice was reordered: %v", idsOf(tasks))
	}
	if len(tasks) != 3 {
		t.Fatalf("input slice was resized to %d", len(tasks))
	}
}

func TestApply_UnknownPrioritySortsLast(t *testing.T) {
	eng := newTestEngine(t)
	tasks := []models.Task{
		{ID: 1, Priority: models.Priority("urgent-ish"), Status: models.StatusActive},
		{ID: 2, Priority: models.PriorityLow, Status: models.StatusActive},
	}
	got := eng.Apply(tasks, Params{Status: FilterAll, SortBy: SortPriority})
	assertIDs(t, got, 2, 1)
}
