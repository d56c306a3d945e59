package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/valter-silva-au/taskflow/internal/core"
	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/internal/storage"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// withTestOrchestrator swaps the package-level orchestrator for one
// backed by an empty local store, restoring the original afterwards.
func withTestOrchestrator(t *testing.T) *core.Orchestrator {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[]"), 0o600); err != nil {
		t.Fatalf("writing empty blob: %v", err)
	}
	store := storage.NewFileTaskStore(dir)
	orch := core.NewOrchestrator(store, query.NewEngine(language.English), nil, nil, 0)

	orig := Orch
	Orch = orch
	t.Cleanup(func() {
		orch.Close()
		Orch = orig
	})
	return orch
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"add", "list", "edit", "done", "undone", "rm", "stats", "export", "import", "browse", "mcp", "version"}
	for _, name := range want {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q command to be registered", name)
		}
	}
}

func TestEnsureLoaded_NilOrchestrator(t *testing.T) {
	orig := Orch
	defer func() { Orch = orig }()
	Orch = nil

	err := ensureLoaded()
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Fatalf("expected initialization error, got %v", err)
	}
}

func TestAddCommand_CreatesTask(t *testing.T) {
	orch := withTestOrchestrator(t)

	origDesc, origPriority, origDue := addDescFlag, addPriorityFlag, addDueFlag
	defer func() { addDescFlag, addPriorityFlag, addDueFlag = origDesc, origPriority, origDue }()
	addDescFlag = "from the test"
	addPriorityFlag = "high"
	addDueFlag = "2026-09-15"

	if err := addCmd.RunE(addCmd, []string{"Buy milk"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := orch.Snapshot()
	if snap.Stats.Total != 1 {
		t.Fatalf("expected 1 task, got %d", snap.Stats.Total)
	}
	task := snap.Tasks[0]
	if task.Title != "Buy milk" || task.Description != "from the test" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2026-09-15" {
		t.Fatalf("unexpected due date: %v", task.DueDate)
	}
}

func TestAddCommand_RejectsEmptyTitle(t *testing.T) {
	withTestOrchestrator(t)

	origPriority := addPriorityFlag
	defer func() { addPriorityFlag = origPriority }()
	addPriorityFlag = "medium"

	if err := addCmd.RunE(addCmd, []string{"   "}); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestDoneAndUndoneCommands(t *testing.T) {
	orch := withTestOrchestrator(t)
	if err := orch.LoadTasks(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created, err := orch.CreateTask(sampleDraftForCLI("Toggle me"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := doneCmd.RunE(doneCmd, []string{"1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, err := orch.GetTask(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("expected task completed")
	}

	if err := undoneCmd.RunE(undoneCmd, []string{"1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, err = orch.GetTask(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("expected task reopened")
	}
}

func TestValidateViewFlags(t *testing.T) {
	tests := []struct {
		status  string
		sortBy  string
		wantErr bool
	}{
		{"all", "dueDate", false},
		{"active", "priority", false},
		{"completed", "title", false},
		{"done", "dueDate", true},
		{"all", "deadline", true},
	}
	for _, tt := range tests {
		err := validateViewFlags(tt.status, tt.sortBy)
		if tt.wantErr && err == nil {
			t.Errorf("expected error for status=%q sort=%q", tt.status, tt.sortBy)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("unexpected error for status=%q sort=%q: %v", tt.status, tt.sortBy, err)
		}
	}
}

func TestParseTaskID(t *testing.T) {
	if id, err := parseTaskID("12"); err != nil || id != 12 {
		t.Fatalf("expected 12, got %d (%v)", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		if _, err := parseTaskID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	due, err := parseDueDate("2026-09-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due.Format("2006-01-02") != "2026-09-15" {
		t.Fatalf("unexpected date %v", due)
	}
	for _, bad := range []string{"15/09/2026", "2026-13-01", "soon"} {
		if _, err := parseDueDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseSince(t *testing.T) {
	now := time.Now().UTC()
	got, err := parseSince("7d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := now.Add(-7 * 24 * time.Hour)
	if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
		t.Fatalf("expected roughly 7 days ago, got %v", got)
	}

	if _, err := parseSince("24h"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "d7", "7w", "-3d"} {
		if _, err := parseSince(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	got := truncate("a very long task title indeed", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected 10-rune truncation with ellipsis, got %q", got)
	}
}

func sampleDraftForCLI(title string) models.TaskDraft {
	return models.TaskDraft{Title: title, Priority: models.PriorityMedium}
}
