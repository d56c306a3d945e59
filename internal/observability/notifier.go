package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// WebhookNotifier posts mutation outcome messages to a generic JSON
// webhook. It satisfies the orchestrator's Notifier interface. Delivery
// is best-effort: a failed post is reported to stderr but never
// interrupts the operation that triggered it.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier for the given URL.
func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type webhookMessage struct {
	Level string `json:"level"` // "success" or "error"
	Text  string `json:"text"`
}

// Success reports a completed mutation.
func (n *WebhookNotifier) Success(message string) {
	n.post(webhookMessage{Level: "success", Text: message})
}

// Failure reports a failed mutation.
func (n *WebhookNotifier) Failure(message string) {
	n.post(webhookMessage{Level: "error", Text: message})
}

func (n *WebhookNotifier) post(msg webhookMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notify: marshaling message: %v\n", err)
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "notify: posting to webhook: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "notify: webhook returned status %d\n", resp.StatusCode)
	}
}

// ConsoleNotifier writes mutation outcomes to a writer, normally
// stderr. It is the default notification channel when no webhook is
// configured.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to out; a nil
// out defaults to stderr.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleNotifier{out: out}
}

// Success reports a completed mutation.
func (n *ConsoleNotifier) Success(message string) {
	fmt.Fprintf(n.out, "%s\n", message)
}

// Failure reports a failed mutation.
func (n *ConsoleNotifier) Failure(message string) {
	fmt.Fprintf(n.out, "error: %s\n", message)
}
