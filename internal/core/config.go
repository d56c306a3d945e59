// Package core contains the business logic for TaskFlow: the task
// orchestrator, the search debouncer, and configuration loading.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

// ConfigManager loads and validates the application configuration from
// the .taskflow.yaml file.
type ConfigManager interface {
	Load() (*models.Config, error)
	Validate(cfg *models.Config) error
}

// viperConfigManager implements ConfigManager using Viper for reading
// the YAML configuration file.
type viperConfigManager struct {
	basePath string
}

// NewConfigManager creates a ConfigManager that reads .taskflow.yaml
// relative to basePath.
func NewConfigManager(basePath string) ConfigManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultConfig returns a Config populated with sensible defaults:
// local backend, data in the base path, 300ms search debounce.
func defaultConfig(basePath string) *models.Config {
	return &models.Config{
		Backend:    models.BackendLocal,
		DataDir:    basePath,
		DebounceMs: 300,
		Locale:     "en",
		Remote: models.RemoteConfig{
			Table: "task_c",
		},
	}
}

// Load reads .taskflow.yaml from the base path. If the file does not
// exist, defaults are returned.
func (cm *viperConfigManager) Load() (*models.Config, error) {
	cfg := defaultConfig(cm.basePath)

	v := viper.New()
	v.SetConfigName(".taskflow")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("backend", string(cfg.Backend))
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("search.debounce_ms", cfg.DebounceMs)
	v.SetDefault("sort.locale", cfg.Locale)
	v.SetDefault("remote.table", cfg.Remote.Table)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .taskflow.yaml: %w", err)
	}

	cfg.Backend = models.Backend(v.GetString("backend"))
	cfg.DataDir = v.GetString("data_dir")
	cfg.DebounceMs = v.GetInt("search.debounce_ms")
	cfg.Locale = v.GetString("sort.locale")
	cfg.Remote.BaseURL = v.GetString("remote.base_url")
	cfg.Remote.APIKey = v.GetString("remote.api_key")
	cfg.Remote.Table = v.GetString("remote.table")
	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.WebhookURL = v.GetString("notifications.webhook_url")

	return cfg, nil
}

// Validate checks the configuration for invalid values and returns a
// clear error message identifying every problem found.
func (cm *viperConfigManager) Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	switch cfg.Backend {
	case models.BackendLocal, models.BackendRemote:
	default:
		errs = append(errs, fmt.Sprintf("backend %q is invalid, must be local or remote", cfg.Backend))
	}

	if cfg.Backend == models.BackendRemote && cfg.Remote.BaseURL == "" {
		errs = append(errs, "remote.base_url must be set when backend is remote")
	}

	if cfg.Backend == models.BackendLocal && cfg.DataDir == "" {
		errs = append(errs, "data_dir must not be empty when backend is local")
	}

	if cfg.DebounceMs < 0 {
		errs = append(errs, fmt.Sprintf("search.debounce_ms must be non-negative, got %d", cfg.DebounceMs))
	}

	if _, err := language.Parse(cfg.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("sort.locale %q is not a valid BCP 47 tag", cfg.Locale))
	}

	if cfg.Notifications.Enabled && cfg.Notifications.WebhookURL == "" {
		errs = append(errs, "notifications.webhook_url must be set when notifications are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
