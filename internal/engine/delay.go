package engine

import (
	"context"
	"time"
)

// Delay sleeps for d, polling the cancellation token every quantum and
// returning early the moment it fires or the context is done. This is the
// only primitive through which the engine ever waits, which is what bounds
// cancellation latency to one quantum even across the multi-second gaps
// between continuous thoughts.
func Delay(ctx context.Context, d, quantum time.Duration, tok *CancelToken) {
	if quantum <= 0 {
		quantum = DefaultOptions().Quantum
	}
	deadline := time.Now().Add(d)
	for {
		if tok != nil && tok.Canceled() {
			return
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		step := remaining
		if step > quantum {
			step = quantum
		}
		timer := time.NewTimer(step)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
