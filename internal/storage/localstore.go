package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

// blobName is the fixed key under which the entire task set is stored.
const blobName = "tasks.json"

// fileTaskStore persists the whole task set as one JSON blob. Every
// operation loads the blob, mutates in memory, and rewrites it; there is
// no incremental persistence.
type fileTaskStore struct {
	basePath string
	mu       sync.Mutex
}

// NewFileTaskStore creates a TaskStore backed by tasks.json in the given
// base directory. If no blob exists yet, the bundled seed set is written
// on first use.
func NewFileTaskStore(basePath string) TaskStore {
	s := &fileTaskStore{basePath: basePath}
	if _, err := os.Stat(s.blobPath()); os.IsNotExist(err) {
		_ = s.save(seedTasks()) // Non-fatal: falls back to seed on every load.
	}
	return s
}

func (s *fileTaskStore) blobPath() string {
	return filepath.Join(s.basePath, blobName)
}

// load reads the full blob. A missing or unreadable blob yields the seed
// set rather than an error, so reads never fail for local storage.
func (s *fileTaskStore) load() []models.Task {
	data, err := os.ReadFile(s.blobPath())
	if err != nil {
		return seedTasks()
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return seedTasks()
	}
	return tasks
}

func (s *fileTaskStore) save(tasks []models.Task) error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("saving tasks: marshaling: %w", err)
	}
	if err := os.WriteFile(s.blobPath(), data, 0o600); err != nil {
		return fmt.Errorf("saving tasks: writing blob: %w", err)
	}
	return nil
}

func (s *fileTaskStore) GetAll() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.load()), nil
}

func (s *fileTaskStore) GetByID(id int) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.load() {
		if t.ID == id {
			c := cloneTask(t)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("getting task %d: %w", id, ErrNotFound)
}

func (s *fileTaskStore) Create(draft models.TaskDraft) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := lockBlob(s.blobPath())
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	defer unlock()

	tasks := s.load()
	task := models.Task{
		ID:          nextID(tasks),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		Status:      models.StatusActive,
		CreatedAt:   now(),
		CompletedAt: nil,
	}

	// Newest first, matching GetAll's ordering contract.
	updated := append([]models.Task{task}, tasks...)
	if err := s.save(updated); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	c := cloneTask(task)
	return &c, nil
}

func (s *fileTaskStore) Update(id int, patch models.TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := lockBlob(s.blobPath())
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	defer unlock()

	tasks := s.load()
	for i, t := range tasks {
		if t.ID != id {
			continue
		}
		tasks[i] = applyPatch(t, normalizePatch(patch))
		if err := s.save(tasks); err != nil {
			return nil, fmt.Errorf("updating task %d: %w", id, err)
		}
		c := cloneTask(tasks[i])
		return &c, nil
	}
	return nil, fmt.Errorf("updating task %d: %w", id, ErrNotFound)
}

func (s *fileTaskStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock, err := lockBlob(s.blobPath())
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	defer unlock()

	tasks := s.load()
	remaining := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(tasks) {
		return fmt.Errorf("deleting task %d: %w", id, ErrNotFound)
	}
	if err := s.save(remaining); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}
