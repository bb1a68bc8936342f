package config

// Config is the file-backed part of hwbot's configuration.
//
// Credentials deliberately never appear here: the remote API token, the
// Telegram token and the target chat id come from the process environment
// (see Credentials). The file only tunes endpoints, timing and sinks.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "10m").
type Config struct {
	Practicum PracticumConfig `json:"practicum"`
	Telegram  TelegramConfig  `json:"telegram"`
	Watch     WatchConfig     `json:"watch"`
	Logging   LoggingConfig   `json:"logging"`
	Storage   *StorageConfig  `json:"storage,omitempty"`
}

// PracticumConfig configures the homework status API client.
type PracticumConfig struct {
	// Endpoint is the homework statuses URL. Empty means the production default.
	Endpoint string `json:"endpoint,omitempty"`

	// Timeout bounds a single status request. "0s" disables the timeout,
	// which stalls the whole loop on a hung call; prefer keeping it set.
	Timeout string `json:"timeout,omitempty"`
}

// TelegramConfig configures the outbound messaging side.
type TelegramConfig struct {
	// APIURL overrides the Telegram Bot API base URL (tests, proxies).
	APIURL string `json:"api_url,omitempty"`

	Timeout string `json:"timeout,omitempty"`

	// RatePerSec caps outbound sends (Telegram flood control).
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// WatchConfig controls the polling loop.
type WatchConfig struct {
	// PollInterval is the unconditional sleep between cycles.
	PollInterval string `json:"poll_interval,omitempty"`
}

type LoggingConfig struct {
	Level   string        `json:"level,omitempty"`
	Console bool          `json:"console"`
	File    LogFileConfig `json:"file,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// StorageConfig enables the optional sqlite history of sent messages.
// The polling cursor and the error registry are never persisted; this is
// an audit trail only.
type StorageConfig struct {
	Enabled     bool   `json:"enabled"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "INFO", Console: true},
	}
}
