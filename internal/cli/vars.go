package cli

import (
	"github.com/valter-silva-au/taskflow/internal/core"
	"github.com/valter-silva-au/taskflow/internal/observability"
	"github.com/valter-silva-au/taskflow/pkg/models"
)

// Package-level dependencies wired by internal/app.go before Execute
// runs. Tests replace these with fakes.
var (
	// BasePath is the resolved data directory root.
	BasePath string

	// Orch owns the in-memory task set and mediates all operations.
	Orch *core.Orchestrator

	// Cfg is the loaded application configuration.
	Cfg *models.Config

	// EventLog records task lifecycle events; may be nil.
	EventLog observability.EventLog
)
