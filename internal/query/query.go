// Package query derives the visible, ordered task list from the full
// set and the current view parameters. It is pure: identical inputs
// always produce identical outputs and the input slice is never
// mutated.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

// StatusFilter narrows the view to one completion state, or none.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// SortKey selects the ordering of the visible list.
type SortKey string

const (
	SortDueDate   SortKey = "dueDate"
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "createdAt"
	SortTitle     SortKey = "title"
)

// Params are the view parameters a single evaluation runs under.
type Params struct {
	Search string
	Status StatusFilter
	SortBy SortKey
}

// DefaultParams matches the initial view: everything visible, soonest
// due date first.
func DefaultParams() Params {
	return Params{Status: FilterAll, SortBy: SortDueDate}
}

// priorityRank orders priorities high first. Unknown values sort after
// the known ones.
var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// Engine evaluates view parameters against a task set. It holds the
// collator used for locale-aware title ordering; Engine values are not
// safe for concurrent use because collators are stateful.
type Engine struct {
	collator *collate.Collator
}

// NewEngine creates an Engine that orders titles according to the given
// locale.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{collator: collate.New(tag)}
}

// Apply filters by search text, then by status, then sorts by the sort
// key. The sort is stable, so ties preserve the relative order of the
// filtering steps. The input slice is left untouched.
func (e *Engine) Apply(tasks []models.Task, p Params) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	search := strings.ToLower(p.Search)
	for _, t := range tasks {
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if p.Status != "" && p.Status != FilterAll && t.Status != models.TaskStatus(p.Status) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return e.less(out[i], out[j], p.SortBy)
	})
	return out
}

// matchesSearch reports whether the lowercased search string occurs in
// the task's title or description.
func matchesSearch(t models.Task, search string) bool {
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func (e *Engine) less(a, b models.Task, key SortKey) bool {
	switch key {
	case SortDueDate:
		// Tasks without a due date always sort after tasks with one.
		switch {
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	case SortPriority:
		return rank(a.Priority) < rank(b.Priority)
	case SortTitle:
		return e.collator.CompareString(a.Title, b.Title) < 0
	case SortCreatedAt:
		// Most recently created first.
		return b.CreatedAt.Before(a.CreatedAt)
	default:
		return false
	}
}

func rank(p models.Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}
