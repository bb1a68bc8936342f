// Package app wires configuration, logging, transport and the watch loop
// into a runnable bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"hwbot/internal/config"
	"hwbot/internal/notify"
	"hwbot/internal/practicum"
	"hwbot/internal/storage"
	kit "hwbot/internal/transport"
	"hwbot/internal/transport/telegram"
	"hwbot/internal/watch"
	logx "hwbot/pkg/logx"
)

// ErrPrecheck marks a startup environment failure. It is logged before
// being returned; main exits quietly (status 0) on it, since misconfigured
// credentials are an operator problem, not a crash.
var ErrPrecheck = errors.New("environment precheck failed")

type App struct {
	cfgm  *config.Manager
	logs  *logx.Service
	log   logx.Logger
	creds config.Credentials

	// adapter is nil when TELEGRAM_TOKEN is empty; the precheck fails on
	// the missing token before anything could touch it.
	adapter kit.Adapter
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logs, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	cfgm.SetLogger(log.With(logx.String("comp", "config")))

	creds := config.CredentialsFromEnv()

	a := &App{
		cfgm:  cfgm,
		logs:  logs,
		log:   log.With(logx.String("comp", "app")),
		creds: creds,
	}

	if strings.TrimSpace(creds.TelegramToken) != "" {
		tgTimeout, err := config.ParseDurationOrDefault("telegram.timeout", cfg.Telegram.Timeout, 8*time.Second)
		if err != nil {
			return nil, err
		}
		ad, err := telegram.New(telegram.Config{
			Token:   creds.TelegramToken,
			APIURL:  cfg.Telegram.APIURL,
			Timeout: tgTimeout,
		}, log.With(logx.String("comp", "telegram")))
		if err != nil {
			return nil, err
		}
		a.adapter = ad
	}

	return a, nil
}

// Run performs the one-time precheck, builds the remaining services and
// drives the watch loop until ctx is done or a fatal failure occurs.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.logs.Close() }()

	if err := watch.Precheck(ctx, a.creds, a.adapter); err != nil {
		a.log.Error("environment precheck failed", logx.Err(err), logx.Bool("fatal", true))
		return ErrPrecheck
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(a.creds.TelegramChatID), 10, 64)
	if err != nil {
		a.log.Error("TELEGRAM_CHAT_ID is not a valid chat id", logx.Err(err), logx.Bool("fatal", true))
		return ErrPrecheck
	}

	cfg := a.cfgm.Get()

	pracTimeout, err := config.ParseDurationOrDefault("practicum.timeout", cfg.Practicum.Timeout, 10*time.Second)
	if err != nil {
		return err
	}
	interval, err := config.ParseDurationOrDefault("watch.poll_interval", cfg.Watch.PollInterval, 10*time.Minute)
	if err != nil {
		return err
	}
	storeCfg, err := mapStorageConfig(cfg)
	if err != nil {
		return err
	}

	store, err := storage.Open(storeCfg, a.log.With(logx.String("comp", "storage")))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if store != nil {
		a.log.Info("message history enabled", logx.String("path", storeCfg.Path))
		defer func() { _ = store.Close() }()
	}

	client := practicum.New(practicum.Config{
		Endpoint: cfg.Practicum.Endpoint,
		Token:    a.creds.PracticumToken,
		Timeout:  pracTimeout,
	})
	sender := notify.New(a.adapter, kit.ChatTarget{ChatID: chatID},
		cfg.Telegram.RatePerSec, a.log.With(logx.String("comp", "notify")), store)
	watcher := watch.New(client, sender, interval, a.log.With(logx.String("comp", "watch")))

	// Config hot reload: poll interval and log settings apply without
	// restart. Credentials and the chat id deliberately do not.
	go func() {
		err := a.cfgm.Watch(ctx, func(next *config.Config) {
			a.logs.Apply(logx.Config{
				Level:   next.Logging.Level,
				Console: next.Logging.Console,
				File: logx.FileConfig{
					Enabled: next.Logging.File.Enabled,
					Path:    next.Logging.File.Path,
				},
			})
			d, err := config.ParseDurationOrDefault("watch.poll_interval", next.Watch.PollInterval, 10*time.Minute)
			if err != nil {
				a.log.Warn("poll interval not applied", logx.Err(err))
				return
			}
			watcher.SetInterval(d)
		})
		if err != nil {
			a.log.Warn("config watch unavailable", logx.Err(err))
		}
	}()

	// systemd integration is a no-op outside of a systemd unit.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	if wd, err := daemon.SdWatchdogEnabled(false); err == nil && wd > 0 {
		go watchdogLoop(ctx, wd)
	}

	runErr := watcher.Run(ctx)
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	return runErr
}

func watchdogLoop(ctx context.Context, wd time.Duration) {
	t := time.NewTicker(wd / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}

func mapStorageConfig(cfg *config.Config) (storage.Config, error) {
	if cfg.Storage == nil || !cfg.Storage.Enabled {
		return storage.Config{}, nil
	}
	busy, err := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
	if err != nil {
		return storage.Config{}, err
	}
	path := cfg.Storage.Path
	if strings.TrimSpace(path) == "" {
		path = "./hwbot.db"
	}
	return storage.Config{Enabled: true, Path: path, BusyTimeout: busy}, nil
}
