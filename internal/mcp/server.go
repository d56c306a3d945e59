// Package mcp provides an MCP (Model Context Protocol) server that
// exposes the TaskFlow task set as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/taskflow/internal/core"
	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// Server wraps the task orchestrator and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	orch   *core.Orchestrator
}

// NewServer creates an MCP server over the given orchestrator, which
// must already hold a loaded task set.
func NewServer(orch *core.Orchestrator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{orch: orch}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskflow", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"filter by status (all, active, completed)"`
	Search string `json:"search,omitempty" jsonschema:"case-insensitive text matched against title and description"`
	SortBy string `json:"sort_by,omitempty" jsonschema:"sort key (dueDate, priority, createdAt, title)"`
}

type taskOutput struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type getTaskInput struct {
	TaskID int `json:"task_id" jsonschema:"required,the numeric task ID"`
}

type createTaskInput struct {
	Title       string `json:"title" jsonschema:"required,the task title (must not be empty)"`
	Description string `json:"description,omitempty" jsonschema:"optional task description"`
	Priority    string `json:"priority,omitempty" jsonschema:"priority (low, medium, high; default medium)"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"optional due date (YYYY-MM-DD)"`
}

type updateTaskInput struct {
	TaskID       int     `json:"task_id" jsonschema:"required,the numeric task ID"`
	Title        string  `json:"title,omitempty" jsonschema:"new title"`
	Description  *string `json:"description,omitempty" jsonschema:"new description"`
	Priority     string  `json:"priority,omitempty" jsonschema:"new priority (low, medium, high)"`
	DueDate      string  `json:"due_date,omitempty" jsonschema:"new due date (YYYY-MM-DD)"`
	ClearDueDate bool    `json:"clear_due_date,omitempty" jsonschema:"remove the due date"`
}

type toggleTaskInput struct {
	TaskID    int  `json:"task_id" jsonschema:"required,the numeric task ID"`
	Completed bool `json:"completed" jsonschema:"required,true to complete the task, false to reopen it"`
}

type deleteTaskInput struct {
	TaskID int `json:"task_id" jsonschema:"required,the numeric task ID"`
}

type deleteTaskOutput struct {
	Message string `json:"message"`
}

type getStatsInput struct{}

type statsOutput struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks with optional status filter, search text, and sort key. Returns ordered task summaries.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by its numeric ID.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a new task. Title is required; priority defaults to medium; new tasks start active.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Update a task's title, description, priority, or due date. Only supplied fields change.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "toggle_task",
		Description: "Mark a task completed or reopen it. Completing stamps the completion time; reopening clears it.",
	}, s.handleToggleTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task permanently by its numeric ID. There is no undo.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get task counts: total, active, completed.",
	}, s.handleGetStats)
}

// --- Tool handlers ---

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	params := query.DefaultParams()
	if input.Status != "" {
		params.Status = query.StatusFilter(input.Status)
	}
	if input.SortBy != "" {
		params.SortBy = query.SortKey(input.SortBy)
	}
	params.Search = input.Search

	tasks, err := s.orch.Query(params)
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input getTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.orch.GetTask(input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting task %d: %s", input.TaskID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleCreateTask(_ context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	draft := models.TaskDraft{
		Title:       input.Title,
		Description: input.Description,
		Priority:    models.Priority(input.Priority),
	}
	if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid due_date %q: expected YYYY-MM-DD", input.DueDate)), taskOutput{}, nil
		}
		draft.DueDate = &due
	}

	task, err := s.orch.CreateTask(draft)
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleUpdateTask(_ context.Context, _ *gomcp.CallToolRequest, input updateTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	var patch models.TaskPatch
	if input.Title != "" {
		patch.Title = &input.Title
	}
	if input.Description != nil {
		patch.Description = input.Description
	}
	if input.Priority != "" {
		p := models.Priority(input.Priority)
		patch.Priority = &p
	}
	if input.ClearDueDate {
		patch.ClearDueDate = true
	} else if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid due_date %q: expected YYYY-MM-DD", input.DueDate)), taskOutput{}, nil
		}
		patch.DueDate = &due
	}

	if patch.IsZero() {
		return errorResult("nothing to change: supply at least one field"), taskOutput{}, nil
	}

	task, err := s.orch.UpdateTask(input.TaskID, patch)
	if err != nil {
		return errorResult(fmt.Sprintf("updating task %d: %s", input.TaskID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleToggleTask(_ context.Context, _ *gomcp.CallToolRequest, input toggleTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.orch.ToggleComplete(input.TaskID, input.Completed)
	if err != nil {
		return errorResult(fmt.Sprintf("toggling task %d: %s", input.TaskID, err)), taskOutput{}, nil
	}
	return nil, taskToOutput(*task), nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input deleteTaskInput) (*gomcp.CallToolResult, deleteTaskOutput, error) {
	if err := s.orch.DeleteTask(input.TaskID); err != nil {
		return errorResult(fmt.Sprintf("deleting task %d: %s", input.TaskID, err)), deleteTaskOutput{}, nil
	}
	return nil, deleteTaskOutput{Message: fmt.Sprintf("task %d deleted", input.TaskID)}, nil
}

func (s *Server) handleGetStats(_ context.Context, _ *gomcp.CallToolRequest, _ getStatsInput) (*gomcp.CallToolResult, statsOutput, error) {
	view := s.orch.Snapshot()
	return nil, statsOutput{
		Total:     view.Stats.Total,
		Active:    view.Stats.Active,
		Completed: view.Stats.Completed,
	}, nil
}

// --- Helpers ---

func taskToOutput(t models.Task) taskOutput {
	out := taskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		out.DueDate = t.DueDate.Format("2006-01-02")
	}
	if t.CompletedAt != nil {
		out.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		IsError: true,
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
	}
}
