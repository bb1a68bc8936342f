package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestParseYAML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.yaml", `
practicum:
  endpoint: http://localhost:8080/statuses/
  timeout: 5s
watch:
  poll_interval: 1m
telegram:
  rate_per_sec: 2
logging:
  level: DEBUG
  console: true
storage:
  enabled: true
  path: ./history.db
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Practicum.Endpoint != "http://localhost:8080/statuses/" {
		t.Fatalf("Endpoint = %q", cfg.Practicum.Endpoint)
	}
	if cfg.Watch.PollInterval != "1m" {
		t.Fatalf("PollInterval = %q", cfg.Watch.PollInterval)
	}
	if cfg.Telegram.RatePerSec != 2 {
		t.Fatalf("RatePerSec = %d", cfg.Telegram.RatePerSec)
	}
	if cfg.Logging.Level != "DEBUG" || !cfg.Logging.Console {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
	if cfg.Storage == nil || !cfg.Storage.Enabled || cfg.Storage.Path != "./history.db" {
		t.Fatalf("Storage = %+v", cfg.Storage)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.yaml", `
watch:
  pol_interval: 1m
`)
	if _, err := Parse(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestManagerLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	m := NewManager(filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "INFO" || !cfg.Logging.Console {
		t.Fatalf("defaults = %+v", cfg.Logging)
	}
	if m.Get() != cfg {
		t.Fatal("Load did not commit the config")
	}
}

func TestParseDurationField(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: "10m", want: 10 * time.Minute},
		{raw: " 500ms ", want: 500 * time.Millisecond},
		{raw: "-1s", wantErr: true},
		{raw: "soon", wantErr: true},
	}
	for _, tt := range tests {
		d, err := ParseDurationField("test.field", tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseDurationField(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDurationField(%q) error: %v", tt.raw, err)
		}
		if d != tt.want {
			t.Fatalf("ParseDurationField(%q) = %v, want %v", tt.raw, d, tt.want)
		}
	}

	if d, err := ParseDurationOrDefault("test.field", "", time.Minute); err != nil || d != time.Minute {
		t.Fatalf("ParseDurationOrDefault = (%v, %v), want (1m, nil)", d, err)
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvPracticumToken, "prac")
	t.Setenv(EnvTelegramToken, "tg")
	t.Setenv(EnvTelegramChatID, "42")

	creds := CredentialsFromEnv()
	if creds.PracticumToken != "prac" || creds.TelegramToken != "tg" || creds.TelegramChatID != "42" {
		t.Fatalf("creds = %+v", creds)
	}
}
