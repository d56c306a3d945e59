package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebhookNotifier_PostsSuccessAndFailure(t *testing.T) {
	var got []webhookMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg webhookMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decoding webhook body: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		got = append(got, msg)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	n.Success("Task created")
	n.Failure("Failed to delete task")

	if len(got) != 2 {
		t.Fatalf("expected 2 webhook posts, got %d", len(got))
	}
	if got[0].Level != "success" || got[0].Text != "Task created" {
		t.Fatalf("unexpected first message: %+v", got[0])
	}
	if got[1].Level != "error" || got[1].Text != "Failed to delete task" {
		t.Fatalf("unexpected second message: %+v", got[1])
	}
}

func TestWebhookNotifier_UnreachableWebhookDoesNotPanic(t *testing.T) {
	n := NewWebhookNotifier("http://127.0.0.1:1/hook")
	// Delivery is best-effort; failures must stay silent to the caller.
	n.Success("still fine")
	n.Failure("also fine")
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)

	n.Success("Task created")
	n.Failure("Failed to update task")

	out := buf.String()
	if !strings.Contains(out, "Task created") {
		t.Fatalf("expected success message, got %q", out)
	}
	if !strings.Contains(out, "error: Failed to update task") {
		t.Fatalf("expected prefixed failure message, got %q", out)
	}
}

func TestConsoleNotifier_NilWriterDefaultsToStderr(t *testing.T) {
	n := NewConsoleNotifier(nil)
	if n.out == nil {
		t.Fatal("expected stderr fallback")
	}
}
