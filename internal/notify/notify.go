// Package notify sends chat messages on behalf of the watch loop.
package notify

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"hwbot/internal/storage"
	kit "hwbot/internal/transport"
	"hwbot/internal/watch"
	logx "hwbot/pkg/logx"
)

// Service wraps the messaging adapter. It implements watch.Sender.
//
// Failures come back as *watch.DeliveryError after being logged; no retry
// happens here — retry timing belongs to the loop's next cycle. The rate
// limiter exists for Telegram flood control, not for pacing the loop.
type Service struct {
	adapter kit.Adapter
	target  kit.ChatTarget
	log     logx.Logger
	limiter *rate.Limiter

	// store, when non-nil, records every send attempt for auditing.
	store storage.Store
}

func New(adapter kit.Adapter, target kit.ChatTarget, ratePerSec int, log logx.Logger, store storage.Store) *Service {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &Service{
		adapter: adapter,
		target:  target,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		store:   store,
	}
}

func (s *Service) Send(ctx context.Context, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return &watch.DeliveryError{Err: err}
	}

	_, err := s.adapter.SendText(ctx, s.target, text, &kit.SendOptions{DisablePreview: true})
	s.record(ctx, text, err)
	if err != nil {
		s.log.Error("message send failed",
			logx.Int64("chat_id", s.target.ChatID),
			logx.Err(err))
		return &watch.DeliveryError{Err: err}
	}
	s.log.Debug("message sent", logx.Int64("chat_id", s.target.ChatID))
	return nil
}

// record appends the attempt to the history store. Best-effort: auditing
// must never fail a delivery that Telegram accepted.
func (s *Service) record(ctx context.Context, text string, sendErr error) {
	if s.store == nil {
		return
	}
	e := storage.Entry{
		At:     time.Now(),
		ChatID: s.target.ChatID,
		Text:   text,
		OK:     sendErr == nil,
	}
	if sendErr != nil {
		e.Error = sendErr.Error()
	}
	if err := s.store.AppendMessage(ctx, e); err != nil {
		s.log.Warn("history append failed", logx.Err(err))
	}
}
