package engine

import "sync/atomic"

// CancelToken is the cooperative cancellation flag threaded through every
// suspension point. Cancellation is polled, never preemptive: an in-flight
// generation call is not aborted, but no further streaming happens once the
// token has fired.
type CancelToken struct {
	fired atomic.Bool
}

// NewCancelToken returns an unfired token.
func NewCancelToken() *CancelToken { return &CancelToken{} }

// Cancel fires the token. Idempotent.
func (t *CancelToken) Cancel() { t.fired.Store(true) }

// Canceled reports whether the token has fired.
func (t *CancelToken) Canceled() bool { return t.fired.Load() }
