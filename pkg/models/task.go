package models

import "time"

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	StatusActive    TaskStatus = "active"
	StatusCompleted TaskStatus = "completed"
)

// Task is the core persisted entity: a single to-do item with an
// immutable store-assigned ID. CompletedAt is non-nil exactly when
// Status is completed.
type Task struct {
	ID          int        `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	DueDate     *time.Time `json:"dueDate" yaml:"due_date"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Status      TaskStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"created_at"`
	CompletedAt *time.Time `json:"completedAt" yaml:"completed_at"`
}

// TaskDraft carries the caller-supplied fields for creating a task.
// The store assigns ID, forces Status to active, stamps CreatedAt,
// and leaves CompletedAt nil.
type TaskDraft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
}

// TaskPatch is a partial update. Nil pointer fields are left untouched;
// the Clear flags null out their optional timestamp explicitly. ID and
// CreatedAt are never patchable.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *TaskStatus

	DueDate      *time.Time
	ClearDueDate bool

	CompletedAt      *time.Time
	ClearCompletedAt bool
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Status == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.CompletedAt == nil && !p.ClearCompletedAt
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	return s == StatusActive || s == StatusCompleted
}
