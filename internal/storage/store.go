// Package storage provides the task persistence layer. Two backends
// implement the same TaskStore contract: a local single-blob file store
// and a client for a remote tabular record service. Backend selection
// happens once, at wiring time in internal/app.go.
package storage

import (
	"errors"
	"time"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

// ErrNotFound is returned when an operation targets a task ID that does
// not exist in the store. Deleting a nonexistent ID returns it too, on
// both backends.
var ErrNotFound = errors.New("task not found")

// ErrUnavailable is returned when the backing storage or service cannot
// be reached or answers with a failure envelope.
var ErrUnavailable = errors.New("task backend unavailable")

// TaskStore is the uniform persistence contract over tasks. Both
// backends guarantee idempotent reads, at most one record per ID, and
// merge-not-replace semantics on Update.
type TaskStore interface {
	// GetAll returns the full task set, most recent first.
	GetAll() ([]models.Task, error)

	// GetByID returns the task with the given ID, or ErrNotFound.
	GetByID(id int) (*models.Task, error)

	// Create persists a new task from the draft. It assigns the ID,
	// forces Status to active, stamps CreatedAt, and returns the
	// stored task.
	Create(draft models.TaskDraft) (*models.Task, error)

	// Update merges the patch into the task with the given ID and
	// returns the updated task, or ErrNotFound.
	Update(id int, patch models.TaskPatch) (*models.Task, error)

	// Delete removes the task permanently, or returns ErrNotFound.
	Delete(id int) error
}

// applyPatch merges a patch into a task, leaving ID and CreatedAt
// untouched. Shared by both backends so merge semantics cannot drift.
func applyPatch(task models.Task, patch models.TaskPatch) models.Task {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		d := *patch.DueDate
		task.DueDate = &d
	}
	if patch.ClearCompletedAt {
		task.CompletedAt = nil
	} else if patch.CompletedAt != nil {
		t := *patch.CompletedAt
		task.CompletedAt = &t
	}
	return task
}

// normalizePatch keeps CompletedAt consistent with a status change: a
// patch completing a task without a timestamp gets one stamped, and a
// patch reactivating a task always drops the old timestamp. Both
// backends run patches through this before writing.
func normalizePatch(patch models.TaskPatch) models.TaskPatch {
	if patch.Status == nil {
		return patch
	}
	switch *patch.Status {
	case models.StatusCompleted:
		if patch.CompletedAt == nil {
			t := now()
			patch.CompletedAt = &t
		}
		patch.ClearCompletedAt = false
	case models.StatusActive:
		patch.CompletedAt = nil
		patch.ClearCompletedAt = true
	}
	return patch
}

// nextID returns the smallest ID strictly greater than every existing
// one: max+1, or 1 for an empty set.
func nextID(tasks []models.Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// cloneTask returns a deep copy so callers can never alias stored
// pointer fields.
func cloneTask(t models.Task) models.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// now is stubbed in tests for deterministic timestamps.
var now = func() time.Time { return time.Now().UTC() }
