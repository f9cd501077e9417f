package engine

import (
	"context"
	"sync"
)

// CompletionSignal is a one-shot future that resolves exactly once, when its
// session reaches the finalized state. The single resolver is structural:
// the channel is closed under a sync.Once and never reassigned.
type CompletionSignal struct {
	once sync.Once
	done chan struct{}
}

func newCompletionSignal() *CompletionSignal {
	return &CompletionSignal{done: make(chan struct{})}
}

// resolve marks the signal done. Safe to call more than once; only the first
// call has effect.
func (s *CompletionSignal) resolve() {
	s.once.Do(func() { close(s.done) })
}

// Done returns a channel that is closed when the signal resolves.
func (s *CompletionSignal) Done() <-chan struct{} { return s.done }

// Resolved reports whether the signal has already resolved.
func (s *CompletionSignal) Resolved() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the signal resolves or the context is done.
func (s *CompletionSignal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
