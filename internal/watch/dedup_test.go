package watch

import (
	"context"
	"errors"
	"testing"
)

func TestNotifyOnceIsIdempotent(t *testing.T) {
	t.Parallel()
	r := NewErrorRegistry()
	var sends int
	send := func(ctx context.Context, text string) error {
		sends++
		return nil
	}

	sent, err := r.NotifyOnce(context.Background(), "boom", send)
	if err != nil || !sent {
		t.Fatalf("first NotifyOnce = (%v, %v), want (true, nil)", sent, err)
	}
	sent, err = r.NotifyOnce(context.Background(), "boom", send)
	if err != nil || sent {
		t.Fatalf("second NotifyOnce = (%v, %v), want (false, nil)", sent, err)
	}
	if sends != 1 {
		t.Fatalf("sends = %d, want 1", sends)
	}
}

func TestNotifyOnceDistinctMessages(t *testing.T) {
	t.Parallel()
	r := NewErrorRegistry()
	var sends int
	send := func(ctx context.Context, text string) error {
		sends++
		return nil
	}

	for _, msg := range []string{"one", "two", "one"} {
		_, _ = r.NotifyOnce(context.Background(), msg, send)
	}
	if sends != 2 {
		t.Fatalf("sends = %d, want 2", sends)
	}
}

func TestNotifyOnceSendFailureKeepsEntry(t *testing.T) {
	t.Parallel()
	r := NewErrorRegistry()
	var sends int
	send := func(ctx context.Context, text string) error {
		sends++
		return errors.New("chat unreachable")
	}

	if _, err := r.NotifyOnce(context.Background(), "boom", send); err == nil {
		t.Fatal("expected send error to propagate")
	}
	// The same failure next cycle must not retrigger a doomed send.
	sent, err := r.NotifyOnce(context.Background(), "boom", send)
	if err != nil || sent {
		t.Fatalf("repeat NotifyOnce = (%v, %v), want (false, nil)", sent, err)
	}
	if sends != 1 {
		t.Fatalf("sends = %d, want 1", sends)
	}
}

func TestResetForgetStreak(t *testing.T) {
	t.Parallel()
	r := NewErrorRegistry()
	send := func(ctx context.Context, text string) error { return nil }

	_, _ = r.NotifyOnce(context.Background(), "boom", send)
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", r.Len())
	}

	sent, err := r.NotifyOnce(context.Background(), "boom", send)
	if err != nil || !sent {
		t.Fatalf("NotifyOnce after Reset = (%v, %v), want (true, nil)", sent, err)
	}
}
