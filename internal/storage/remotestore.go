package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

// listPageSize is the fixed page size requested from the record service.
// Pagination beyond the first page is not supported.
const listPageSize = 100

// dueDateLayout is the date-only format used by the remote due_date_c field.
const dueDateLayout = "2006-01-02"

// recordTaskStore implements TaskStore against a generic tabular record
// service. Each operation maps to one HTTP call on a fixed table,
// translating between internal field names and the service's external
// ones. The remote table also carries Name and subcategory_c columns
// that have no internal counterpart; they are ignored on read and never
// written.
type recordTaskStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewRecordTaskStore creates a TaskStore backed by the record service
// described by cfg. An empty cfg.Table defaults to "task_c".
func NewRecordTaskStore(cfg models.RemoteConfig) TaskStore {
	table := cfg.Table
	if table == "" {
		table = "task_c"
	}
	return &recordTaskStore{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		table:   table,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// taskRecord mirrors one row of the remote table, external field names
// on the wire.
type taskRecord struct {
	ID          int     `json:"Id"`
	Title       string  `json:"title_c"`
	Description string  `json:"description_c"`
	DueDate     *string `json:"due_date_c"`
	Priority    string  `json:"priority_c"`
	Status      string  `json:"status_c"`
	CreatedAt   string  `json:"created_at_c"`
	CompletedAt *string `json:"completed_at_c"`
}

// envelope is the service's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *recordTaskStore) recordsURL() string {
	return fmt.Sprintf("%s/api/v1/tables/%s/records", s.baseURL, s.table)
}

func (s *recordTaskStore) recordURL(id int) string {
	return fmt.Sprintf("%s/%d", s.recordsURL(), id)
}

func (s *recordTaskStore) GetAll() ([]models.Task, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", listPageSize))
	q.Set("sort", "-created_at_c")

	data, err := s.do(http.MethodGet, s.recordsURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("listing tasks: decoding records: %w", ErrUnavailable)
	}

	tasks := make([]models.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

func (s *recordTaskStore) GetByID(id int) (*models.Task, error) {
	data, err := s.do(http.MethodGet, s.recordURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return decodeTask(data)
}

func (s *recordTaskStore) Create(draft models.TaskDraft) (*models.Task, error) {
	payload := map[string]any{
		"title_c":        draft.Title,
		"description_c":  draft.Description,
		"priority_c":     string(draft.Priority),
		"status_c":       string(models.StatusActive),
		"created_at_c":   now().Format(time.RFC3339),
		"completed_at_c": nil,
	}
	if draft.DueDate != nil {
		payload["due_date_c"] = draft.DueDate.Format(dueDateLayout)
	}

	data, err := s.do(http.MethodPost, s.recordsURL(), payload)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return decodeTask(data)
}

func (s *recordTaskStore) Update(id int, patch models.TaskPatch) (*models.Task, error) {
	// Only supplied fields go on the wire; cleared timestamps are
	// explicit nulls, everything else absent is simply omitted.
	patch = normalizePatch(patch)
	payload := map[string]any{}
	if patch.Title != nil {
		payload["title_c"] = *patch.Title
	}
	if patch.Description != nil {
		payload["description_c"] = *patch.Description
	}
	if patch.Priority != nil {
		payload["priority_c"] = string(*patch.Priority)
	}
	if patch.Status != nil {
		payload["status_c"] = string(*patch.Status)
	}
	if patch.ClearDueDate {
		payload["due_date_c"] = nil
	} else if patch.DueDate != nil {
		payload["due_date_c"] = patch.DueDate.Format(dueDateLayout)
	}
	if patch.ClearCompletedAt {
		payload["completed_at_c"] = nil
	} else if patch.CompletedAt != nil {
		payload["completed_at_c"] = patch.CompletedAt.Format(time.RFC3339)
	}

	data, err := s.do(http.MethodPatch, s.recordURL(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	return decodeTask(data)
}

func (s *recordTaskStore) Delete(id int) error {
	if _, err := s.do(http.MethodDelete, s.recordURL(id), nil); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// do performs one request against the record service and returns the
// envelope's data payload. A 404 maps to ErrNotFound; transport errors,
// 5xx responses, and failure envelopes all map to ErrUnavailable.
func (s *recordTaskStore) do(method, rawURL string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding envelope: %v", ErrUnavailable, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, env.Message)
	}
	return env.Data, nil
}

func decodeTask(data json.RawMessage) (*models.Task, error) {
	var r taskRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding record: %w", ErrUnavailable)
	}
	t := r.toTask()
	return &t, nil
}

// toTask translates a wire record into the internal entity.
func (r taskRecord) toTask() models.Task {
	t := models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    models.Priority(r.Priority),
		Status:      models.TaskStatus(r.Status),
	}
	if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		t.CreatedAt = ts
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if d, err := parseRemoteDate(*r.DueDate); err == nil {
			t.DueDate = &d
		}
	}
	if r.CompletedAt != nil && *r.CompletedAt != "" {
		if ts, err := time.Parse(time.RFC3339, *r.CompletedAt); err == nil {
			t.CompletedAt = &ts
		}
	}
	return t
}

// parseRemoteDate accepts both the date-only layout the service stores
// and full RFC3339, which older rows used.
func parseRemoteDate(s string) (time.Time, error) {
	if d, err := time.Parse(dueDateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}
