package core

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiescence window applied to search
// input when no window is configured.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer defers a function until its input has been quiet for a
// fixed window. Each Trigger cancels any pending invocation and
// restarts the window, so a burst of triggers runs the function exactly
// once, with whatever the final call scheduled.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given quiescence window.
// A zero or negative window runs triggers synchronously, which keeps
// one-shot callers (the non-interactive CLI) free of timing concerns.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the window elapses, cancelling any
// previously pending invocation.
func (d *Debouncer) Trigger(fn func()) {
	if d.window <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
