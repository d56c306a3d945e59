// Package internal provides the App struct that wires the TaskFlow
// components together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"github.com/valter-silva-au/taskflow/internal/cli"
	"github.com/valter-silva-au/taskflow/internal/core"
	"github.com/valter-silva-au/taskflow/internal/observability"
	"github.com/valter-silva-au/taskflow/internal/query"
	"github.com/valter-silva-au/taskflow/internal/storage"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// App holds all service dependencies for TaskFlow.
type App struct {
	BasePath string
	Config   *models.Config

	Store    storage.TaskStore
	Engine   *query.Engine
	Orch     *core.Orchestrator
	EventLog observability.EventLog
	Notifier core.Notifier
}

// NewApp creates and wires all TaskFlow components. basePath is the
// directory holding .taskflow.yaml and, for the local backend, the
// task blob.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	cfgMgr := core.NewConfigManager(basePath)
	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("initializing taskflow: %w", err)
	}
	if err := cfgMgr.Validate(cfg); err != nil {
		return nil, fmt.Errorf("initializing taskflow: %w", err)
	}
	app.Config = cfg

	// --- Storage: the single backend selection point ---
	switch cfg.Backend {
	case models.BackendRemote:
		app.Store = storage.NewRecordTaskStore(cfg.Remote)
	default:
		app.Store = storage.NewFileTaskStore(cfg.DataDir)
	}

	// --- Query engine ---
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}
	app.Engine = query.NewEngine(tag)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".taskflow_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: run without the event log if it can't be created.
		app.EventLog = nil
	}
	if cfg.Notifications.Enabled && cfg.Notifications.WebhookURL != "" {
		app.Notifier = observability.NewWebhookNotifier(cfg.Notifications.WebhookURL)
	} else {
		app.Notifier = observability.NewConsoleNotifier(nil)
	}

	// --- Orchestrator ---
	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLogAdapter{log: app.EventLog}
	}
	app.Orch = core.NewOrchestrator(
		app.Store,
		app.Engine,
		events,
		app.Notifier,
		time.Duration(cfg.DebounceMs)*time.Millisecond,
	)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Orch = app.Orch
	cli.Cfg = cfg
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle, and cancels any pending debounced work.
func (a *App) Close() error {
	if a.Orch != nil {
		a.Orch.Close()
	}
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base directory for TaskFlow data. It
// checks the TASKFLOW_HOME env var, then walks up from the current
// directory looking for a .taskflow.yaml, and otherwise falls back to
// the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("TASKFLOW_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".taskflow.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
