package query

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
	"pgregory.net/rapid"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

func genWord(t *rapid.T, label string) string {
	letters := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	n := rapid.IntRange(1, 12).Draw(t, label+"Len")
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rapid.IntRange(0, len(letters)-1).Draw(t, label+"Char")]
	}
	return string(b)
}

func genTask(t *rapid.T, id int) models.Task {
	priorities := []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	statuses := []models.TaskStatus{models.StatusActive, models.StatusCompleted}

	task := models.Task{
		ID:          id,
		Title:       genWord(t, "title"),
		Description: genWord(t, "desc"),
		Priority:    priorities[rapid.IntRange(0, 2).Draw(t, "priorityIdx")],
		Status:      statuses[rapid.IntRange(0, 1).Draw(t, "statusIdx")],
		CreatedAt:   time.Date(2026, 8, rapid.IntRange(1, 28).Draw(t, "createdDay"), 0, 0, 0, 0, time.UTC),
	}
	if rapid.Bool().Draw(t, "hasDue") {
		due := time.Date(2026, 9, rapid.IntRange(1, 28).Draw(t, "dueDay"), 0, 0, 0, 0, time.UTC)
		task.DueDate = &due
	}
	return task
}

func genTasks(t *rapid.T) []models.Task {
	n := rapid.IntRange(0, 20).Draw(t, "nTasks")
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = genTask(t, i+1)
	}
	return tasks
}

func genParams(t *rapid.T) Params {
	filters := []StatusFilter{FilterAll, FilterActive, FilterCompleted}
	sorts := []SortKey{SortDueDate, SortPriority, SortCreatedAt, SortTitle}
	p := Params{
		Status: filters[rapid.IntRange(0, 2).Draw(t, "filterIdx")],
		SortBy: sorts[rapid.IntRange(0, 3).Draw(t, "sortIdx")],
	}
	if rapid.Bool().Draw(t, "hasSearch") {
		p.Search = genWord(t, "search")
	}
	return p
}

// Every task in the output matches the search and status filter, and
// every input task that matches both is present exactly once.
func TestApply_FilterExactnessProperty(t *testing.T) {
	eng := NewEngine(language.English)
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		p := genParams(rt)

		got := eng.Apply(tasks, p)

		matches := func(task models.Task) bool {
			if p.Search != "" {
				s := strings.ToLower(p.Search)
				if !strings.Contains(strings.ToLower(task.Title), s) &&
					!strings.Contains(strings.ToLower(task.Description), s) {
					return false
				}
			}
			if p.Status != FilterAll && task.Status != models.TaskStatus(p.Status) {
				return false
			}
			return true
		}

		wantCount := 0
		for _, task := range tasks {
			if matches(task) {
				wantCount++
			}
		}
		if len(got) != wantCount {
			rt.Fatalf("expected %d matching tasks, got %d", wantCount, len(got))
		}
		seen := map[int]bool{}
		for _, task := range got {
			if !matches(task) {
				rt.Fatalf("task %d does not match params %+v", task.ID, p)
			}
			if seen[task.ID] {
				rt.Fatalf("task %d duplicated in output", task.ID)
			}
			seen[task.ID] = true
		}
	})
}

// The evaluation is pure: the same inputs give the same output, and the
// input slice is unchanged afterwards.
func TestApply_PurityProperty(t *testing.T) {
	eng := NewEngine(language.English)
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		p := genParams(rt)

		before := make([]int, len(tasks))
		for i, task := range tasks {
			before[i] = task.ID
		}

		first := eng.Apply(tasks, p)
		second := eng.Apply(tasks, p)

		if len(first) != len(second) {
			rt.Fatalf("two evaluations differ in length: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				rt.Fatalf("two evaluations differ at %d: %d vs %d", i, first[i].ID, second[i].ID)
			}
		}
		for i, task := range tasks {
			if task.ID != before[i] {
				rt.Fatal("input slice was mutated")
			}
		}
	})
}

// Due-date ordering: dated tasks are sorted ascending and always come
// before undated ones.
func TestApply_DueDateOrderProperty(t *testing.T) {
	eng := NewEngine(language.English)
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		got := eng.Apply(tasks, Params{Status: FilterAll, SortBy: SortDueDate})

		sawNil := false
		var prev *time.Time
		for _, task := range got {
			if task.DueDate == nil {
				sawNil = true
				continue
			}
			if sawNil {
				rt.Fatalf("dated task %d after an undated one", task.ID)
			}
			if prev != nil && task.DueDate.Before(*prev) {
				rt.Fatalf("due dates out of order at task %d", task.ID)
			}
			prev = task.DueDate
		}
	})
}
