package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/taskflow/internal/query"
)

func TestExportImportRoundTrip(t *testing.T) {
	orch := withTestOrchestrator(t)
	if err := orch.LoadTasks(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := orch.CreateTask(sampleDraftForCLI("Keep me")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done, err := orch.CreateTask(sampleDraftForCLI("Already done"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := orch.ToggleComplete(done.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapPath := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := exportCmd.RunE(exportCmd, []string{snapPath}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(snapPath)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.Contains(string(data), "Keep me") || !strings.Contains(string(data), "version:") {
		t.Fatalf("unexpected snapshot contents: %s", data)
	}

	// Import into a fresh store.
	fresh := withTestOrchestrator(t)
	if err := importCmd.RunE(importCmd, []string{snapPath}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := fresh.Snapshot()
	if snap.Stats.Total != 2 {
		t.Fatalf("expected 2 imported tasks, got %d", snap.Stats.Total)
	}
	if snap.Stats.Completed != 1 {
		t.Fatalf("expected completion state preserved, got %+v", snap.Stats)
	}
}

func TestImportCommand_MissingFile(t *testing.T) {
	withTestOrchestrator(t)
	err := importCmd.RunE(importCmd, []string{filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

func TestImportCommand_MalformedSnapshot(t *testing.T) {
	withTestOrchestrator(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tasks: [unclosed"), 0o600); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	if err := importCmd.RunE(importCmd, []string{path}); err == nil {
		t.Fatal("expected error for malformed snapshot")
	}
}

func TestSnapshotParamsCoverEverything(t *testing.T) {
	p := allTasksParams()
	if p.Status != query.FilterAll || p.Search != "" {
		t.Fatalf("snapshot params must not filter: %+v", p)
	}
}
