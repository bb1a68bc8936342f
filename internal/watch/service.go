package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	logx "hwbot/pkg/logx"
)

// Fetcher pulls the latest homework statuses since a cursor timestamp.
//
// Precondition: the returned homeworks list is most-recent-first. The loop
// acts on index 0 only; a provider that breaks this ordering would make
// the bot report a stale record, and nothing here detects that.
type Fetcher interface {
	HomeworkStatuses(ctx context.Context, from int64) (any, error)
}

// Sender pushes one text message to the configured chat.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Service drives the poll -> validate -> translate -> notify cycle.
//
// One goroutine, strictly sequential: a cycle finishes (network calls
// included) before the next starts. The cursor and the error registry are
// mutated only here, so neither needs locking. Only the poll interval is
// shared with the config reloader, hence the atomic.
type Service struct {
	log   logx.Logger
	fetch Fetcher
	send  Sender

	interval atomic.Int64 // nanoseconds

	// now is a test seam; time.Now outside of tests.
	now func() time.Time

	// cursor is the lower bound of the next query window (unix seconds).
	// It never decreases and only advances after a fully successful cycle.
	cursor   int64
	registry *ErrorRegistry
}

func New(fetch Fetcher, send Sender, interval time.Duration, log logx.Logger) *Service {
	s := &Service{
		log:      log,
		fetch:    fetch,
		send:     send,
		now:      time.Now,
		registry: NewErrorRegistry(),
	}
	s.SetInterval(interval)
	return s
}

// SetInterval changes the inter-cycle sleep. Safe to call while Run is
// active; the new value applies from the next sleep.
func (s *Service) SetInterval(d time.Duration) {
	if d <= 0 {
		d = 10 * time.Minute
	}
	s.interval.Store(int64(d))
}

func (s *Service) Interval() time.Duration {
	return time.Duration(s.interval.Load())
}

// Run executes cycles until ctx is canceled or a failure outside the
// known recoverable kinds occurs. The returned error is nil on cancel
// and the fatal cause otherwise.
func (s *Service) Run(ctx context.Context) error {
	s.cursor = s.now().Unix()
	s.log.Info("watch loop started",
		logx.Int64("cursor", s.cursor),
		logx.Duration("interval", s.Interval()))

	for {
		if err := s.runCycle(ctx); err != nil {
			return err
		}
		if !s.sleep(ctx) {
			s.log.Info("watch loop stopped")
			return nil
		}
	}
}

type cycleOutcome int

const (
	cycleFailed cycleOutcome = iota
	cycleNoUpdate
	cycleSuccess
)

// runCycle performs one cycle and absorbs every recoverable failure.
// A non-nil return is fatal and stops the loop.
func (s *Service) runCycle(ctx context.Context) error {
	out, err := s.cycle(ctx)
	switch {
	case err == nil && out == cycleSuccess:
		// Only a full fetch+validate+translate+notify pass ends the
		// failure streak and moves the window. +1 skips the record
		// sitting exactly on the boundary.
		s.registry.Reset()
		s.cursor = s.now().Unix() + 1
	case err == nil:
		// Empty homeworks: not a success (cursor stays), not a failure
		// (the streak neither grows nor resets).
		s.log.Debug("no homework updates")
	case Recoverable(err):
		s.log.Error("cycle failed", logx.Err(err))
		s.reportError(ctx, err)
	default:
		s.log.Error("program failure", logx.Err(err), logx.Bool("fatal", true))
		return err
	}
	return nil
}

func (s *Service) cycle(ctx context.Context) (cycleOutcome, error) {
	body, err := s.fetch.HomeworkStatuses(ctx, s.cursor)
	if err != nil {
		return cycleFailed, err
	}
	ans, err := CheckResponse(body)
	if err != nil {
		return cycleFailed, err
	}
	if len(ans.Homeworks) == 0 {
		return cycleNoUpdate, nil
	}

	// Most-recent-first: only the newest record is acted upon.
	msg, err := ParseStatus(ans.Homeworks[0])
	if err != nil {
		return cycleFailed, err
	}

	// Status-change notifications are always attempted. The registry
	// exists for error reports only and never suppresses these.
	if err := s.send.Send(ctx, msg); err != nil {
		return cycleFailed, err
	}
	return cycleSuccess, nil
}

// reportError forwards a recoverable failure to the chat, once per
// distinct message per streak.
func (s *Service) reportError(ctx context.Context, cause error) {
	var de *DeliveryError
	if errors.As(cause, &de) {
		// A failed delivery cannot be reported through the same broken
		// channel, and it must not occupy the registry either: the next
		// unrelated error still deserves its own report.
		return
	}
	sent, err := s.registry.NotifyOnce(ctx, cause.Error(), s.send.Send)
	if err != nil {
		// The message stays registered: an identical failure next cycle
		// would not retrigger a doomed send.
		s.log.Error("error report not delivered", logx.Err(err))
		return
	}
	if sent {
		s.log.Debug("error reported to chat")
	}
}

// sleep waits one interval. Returns false when ctx ended the wait.
func (s *Service) sleep(ctx context.Context) bool {
	t := time.NewTimer(s.Interval())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
