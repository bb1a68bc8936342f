package watch

import "context"

// ErrorRegistry remembers which error texts were already pushed to the
// chat during the current failure streak, so a flapping dependency
// produces one notification instead of one per cycle.
//
// Owned by the watch loop's single goroutine; no locking.
type ErrorRegistry struct {
	seen map[string]struct{}
}

func NewErrorRegistry() *ErrorRegistry {
	return &ErrorRegistry{seen: make(map[string]struct{})}
}

// NotifyOnce sends msg through send unless an identical msg was already
// sent during this streak. Returns whether a send was attempted and
// succeeded. A failed send still marks msg as seen: retrying the report
// next cycle would just fail the same way and spam the logs.
func (r *ErrorRegistry) NotifyOnce(ctx context.Context, msg string, send func(ctx context.Context, text string) error) (bool, error) {
	if _, ok := r.seen[msg]; ok {
		return false, nil
	}
	r.seen[msg] = struct{}{}
	if err := send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Reset forgets the streak. Called after any fully successful cycle.
func (r *ErrorRegistry) Reset() {
	r.seen = make(map[string]struct{})
}

func (r *ErrorRegistry) Len() int { return len(r.seen) }
