// Package storage keeps an optional audit trail of outbound messages.
//
// It never holds loop state: the polling cursor and the error registry
// live in memory only and start fresh on every process start.
package storage

import (
	"context"
	"errors"
	"time"

	logx "hwbot/pkg/logx"
)

var ErrDisabled = errors.New("storage disabled")

type Config struct {
	Enabled     bool
	Path        string
	BusyTimeout time.Duration // 0 means default
}

// Entry records one outbound send attempt.
// Keep it compact and schema-stable.
type Entry struct {
	At     time.Time
	ChatID int64
	Text   string
	OK     bool
	Error  string
}

// Store is the minimal persistence API used by the notifier.
type Store interface {
	AppendMessage(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if storage is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return openSQLite(cfg, log)
}
