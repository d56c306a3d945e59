package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// TaskStore is the subset of the storage contract the Orchestrator
// needs. Defining it here keeps core independent of the storage
// package; both backends satisfy it.
type TaskStore interface {
	GetAll() ([]models.Task, error)
	GetByID(id int) (*models.Task, error)
	Create(draft models.TaskDraft) (*models.Task, error)
	Update(id int, patch models.TaskPatch) (*models.Task, error)
	Delete(id int) error
}

// Notifier is the non-blocking notification channel for reporting the
// outcome of mutations. Validation errors never go through it; they are
// returned inline to the caller instead.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// EventLogger records task lifecycle events for observability.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// CollectionState tracks the lifecycle of the in-memory task set.
type CollectionState string

const (
	StateUninitialized CollectionState = "uninitialized"
	StateLoading       CollectionState = "loading"
	StateReady         CollectionState = "ready"
	StateFailed        CollectionState = "failed"
)

// Stats are the derived collection counts, recomputed on every change.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// View is a read-only snapshot of the derived state exposed to the
// presentation layer.
type View struct {
	State  CollectionState
	Err    string
	Tasks  []models.Task
	Stats  Stats
	Params query.Params
}

// ValidationError reports input rejected before any store call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrNotReady is returned for mutations attempted before a successful
// load.
var ErrNotReady = errors.New("tasks not loaded")

// Orchestrator owns the single in-memory copy of the task set and the
// current view parameters. All mutations go through the store first; a
// failed mutation never alters the in-memory set. Every method applies
// its effect atomically under one mutex, the equivalent of a
// single-threaded event loop's resumption point.
type Orchestrator struct {
	store    TaskStore
	engine   *query.Engine
	events   EventLogger // may be nil
	notifier Notifier    // may be nil
	debounce *Debouncer

	mu       sync.Mutex
	state    CollectionState
	loadErr  string
	tasks    []models.Task
	params   query.Params
	visible  []models.Task
	stats    Stats
	onChange func() // invoked outside the lock after derived state changes
}

// NewOrchestrator creates an Orchestrator in the Uninitialized state.
// events and notifier may be nil. debounceWindow governs SetSearch; use
// DefaultDebounceWindow unless configured otherwise.
func NewOrchestrator(store TaskStore, engine *query.Engine, events EventLogger, notifier Notifier, debounceWindow time.Duration) *Orchestrator {
	return &Orchestrator{
		store:    store,
		engine:   engine,
		events:   events,
		notifier: notifier,
		debounce: NewDebouncer(debounceWindow),
		state:    StateUninitialized,
		params:   query.DefaultParams(),
	}
}

// SetOnChange registers a callback invoked after every change to the
// derived state. Used by the interactive UI to repaint; the callback
// runs outside the orchestrator lock and must not block.
func (o *Orchestrator) SetOnChange(fn func()) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

// LoadTasks (re)loads the full task set from the store. It is the retry
// entry point after a failed load. Overlapping loads both complete and
// the later result wins.
func (o *Orchestrator) LoadTasks() error {
	o.mu.Lock()
	o.state = StateLoading
	o.loadErr = ""
	o.mu.Unlock()

	tasks, err := o.store.GetAll()

	o.mu.Lock()
	if err != nil {
		o.state = StateFailed
		o.loadErr = err.Error()
		o.mu.Unlock()
		o.notifyChange()
		return fmt.Errorf("loading tasks: %w", err)
	}
	o.tasks = tasks
	o.state = StateReady
	o.recomputeLocked()
	o.mu.Unlock()

	o.logEvent("tasks.loaded", map[string]any{"count": len(tasks)})
	o.notifyChange()
	return nil
}

// CreateTask validates the draft, persists it, and merges the stored
// task into the in-memory set.
func (o *Orchestrator) CreateTask(draft models.TaskDraft) (*models.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(draft.Priority) {
		return nil, &ValidationError{Field: "priority", Reason: "must be low, medium, or high"}
	}
	if err := o.requireReady(); err != nil {
		return nil, err
	}

	task, err := o.store.Create(draft)
	if err != nil {
		o.notifyFailure("Failed to create task")
		return nil, fmt.Errorf("creating task: %w", err)
	}

	o.mu.Lock()
	o.tasks = append([]models.Task{*task}, o.tasks...)
	o.recomputeLocked()
	o.mu.Unlock()

	o.logEvent("task.created", map[string]any{"id": task.ID, "title": task.Title})
	o.notifySuccess("Task created")
	o.notifyChange()
	return task, nil
}

// UpdateTask merges the patch through the store and reconciles the
// in-memory copy with the returned record.
func (o *Orchestrator) UpdateTask(id int, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return nil, &ValidationError{Field: "priority", Reason: "must be low, medium, or high"}
	}
	if err := o.requireReady(); err != nil {
		return nil, err
	}

	task, err := o.store.Update(id, patch)
	if err != nil {
		o.notifyFailure("Failed to update task")
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}

	o.replaceTask(*task)
	o.logEvent("task.updated", map[string]any{"id": task.ID})
	o.notifySuccess("Task updated")
	o.notifyChange()
	return task, nil
}

// ToggleComplete flips a task's completion state. It is a convenience
// over UpdateTask, not a distinct store primitive: completing stamps
// CompletedAt, reopening clears it.
func (o *Orchestrator) ToggleComplete(id int, completed bool) (*models.Task, error) {
	if err := o.requireReady(); err != nil {
		return nil, err
	}

	var patch models.TaskPatch
	if completed {
		status := models.StatusCompleted
		done := time.Now().UTC()
		patch = models.TaskPatch{Status: &status, CompletedAt: &done}
	} else {
		status := models.StatusActive
		patch = models.TaskPatch{Status: &status, ClearCompletedAt: true}
	}

	task, err := o.store.Update(id, patch)
	if err != nil {
		o.notifyFailure("Failed to update task")
		return nil, fmt.Errorf("toggling task %d: %w", id, err)
	}

	o.replaceTask(*task)
	if completed {
		o.logEvent("task.completed", map[string]any{"id": task.ID})
		o.notifySuccess("Task completed, nice work")
	} else {
		o.logEvent("task.reopened", map[string]any{"id": task.ID})
	}
	o.notifyChange()
	return task, nil
}

// DeleteTask removes the task permanently.
func (o *Orchestrator) DeleteTask(id int) error {
	if err := o.requireReady(); err != nil {
		return err
	}

	if err := o.store.Delete(id); err != nil {
		o.notifyFailure("Failed to delete task")
		return fmt.Errorf("deleting task %d: %w", id, err)
	}

	o.mu.Lock()
	kept := o.tasks[:0:0]
	for _, t := range o.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	o.tasks = kept
	o.recomputeLocked()
	o.mu.Unlock()

	o.logEvent("task.deleted", map[string]any{"id": id})
	o.notifySuccess("Task deleted")
	o.notifyChange()
	return nil
}

// GetTask returns a task from the in-memory set by ID.
func (o *Orchestrator) GetTask(id int) (*models.Task, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateReady {
		return nil, ErrNotReady
	}
	for _, t := range o.tasks {
		if t.ID == id {
			c := t
			return &c, nil
		}
	}
	return nil, fmt.Errorf("task %d not found", id)
}

// SetSearch schedules a re-evaluation with the given search text after
// the quiescence window. A burst of calls inside the window evaluates
// exactly once, with the last value.
func (o *Orchestrator) SetSearch(text string) {
	o.debounce.Trigger(func() {
		o.applySearch(text)
	})
}

// SetSearchNow applies the search text immediately, bypassing the
// debounce. Used by one-shot command invocations.
func (o *Orchestrator) SetSearchNow(text string) {
	o.debounce.Stop()
	o.applySearch(text)
}

func (o *Orchestrator) applySearch(text string) {
	o.mu.Lock()
	o.params.Search = text
	o.recomputeLocked()
	o.mu.Unlock()
	o.notifyChange()
}

// SetFilters sets the status filter and sort key and recomputes the
// view synchronously.
func (o *Orchestrator) SetFilters(status query.StatusFilter, sortBy query.SortKey) {
	o.mu.Lock()
	if status != "" {
		o.params.Status = status
	}
	if sortBy != "" {
		o.params.SortBy = sortBy
	}
	o.recomputeLocked()
	o.mu.Unlock()
	o.notifyChange()
}

// Query evaluates arbitrary view parameters against the current set
// without touching the orchestrator's own view. Used by the MCP server.
func (o *Orchestrator) Query(p query.Params) ([]models.Task, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateReady {
		return nil, ErrNotReady
	}
	return o.engine.Apply(o.tasks, p), nil
}

// Snapshot returns a copy of the derived state for rendering.
func (o *Orchestrator) Snapshot() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	tasks := make([]models.Task, len(o.visible))
	copy(tasks, o.visible)
	return View{
		State:  o.state,
		Err:    o.loadErr,
		Tasks:  tasks,
		Stats:  o.stats,
		Params: o.params,
	}
}

// Close stops any pending debounced evaluation.
func (o *Orchestrator) Close() {
	o.debounce.Stop()
}

func (o *Orchestrator) requireReady() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateReady {
		return ErrNotReady
	}
	return nil
}

// replaceTask swaps the updated record into the in-memory set without a
// full reload.
func (o *Orchestrator) replaceTask(task models.Task) {
	o.mu.Lock()
	for i, t := range o.tasks {
		if t.ID == task.ID {
			o.tasks[i] = task
			break
		}
	}
	o.recomputeLocked()
	o.mu.Unlock()
}

// recomputeLocked rebuilds the stats and the visible list. Callers hold
// o.mu. No caching beyond this recompute; the collection is small.
func (o *Orchestrator) recomputeLocked() {
	stats := Stats{Total: len(o.tasks)}
	for _, t := range o.tasks {
		switch t.Status {
		case models.StatusCompleted:
			stats.Completed++
		default:
			stats.Active++
		}
	}
	o.stats = stats
	o.visible = o.engine.Apply(o.tasks, o.params)
}

func (o *Orchestrator) notifyChange() {
	o.mu.Lock()
	fn := o.onChange
	o.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (o *Orchestrator) notifySuccess(msg string) {
	if o.notifier != nil {
		o.notifier.Success(msg)
	}
}

func (o *Orchestrator) notifyFailure(msg string) {
	if o.notifier != nil {
		o.notifier.Failure(msg)
	}
}

func (o *Orchestrator) logEvent(eventType string, data map[string]any) {
	if o.events != nil {
		_ = o.events.LogEvent(eventType, data) // Observability is best-effort.
	}
}
