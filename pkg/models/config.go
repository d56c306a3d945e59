package models

// Backend identifies which task store implementation is in use.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)

// RemoteConfig holds connection settings for the remote record service.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Table   string
}

// NotificationConfig controls the outbound notification channel used for
// reporting mutation results.
type NotificationConfig struct {
	Enabled    bool
	WebhookURL string
}

// Config is the merged application configuration loaded from
// .taskflow.yaml, with defaults applied for any missing key.
type Config struct {
	Backend       Backend
	DataDir       string
	Remote        RemoteConfig
	DebounceMs    int
	Locale        string
	Notifications NotificationConfig
}
