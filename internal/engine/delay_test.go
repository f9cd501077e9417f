package engine

import (
	"context"
	"testing"
	"time"
)

func TestDelayFullSleep(t *testing.T) {
	ctx := context.Background()
	tok := NewCancelToken()

	start := time.Now()
	Delay(ctx, 30*time.Millisecond, 5*time.Millisecond, tok)
	elapsed := time.Since(start)

	if elapsed < 30*time.Millisecond {
		t.Errorf("Delay returned after %v, want >= 30ms", elapsed)
	}
}

func TestDelayCancelLatency(t *testing.T) {
	ctx := context.Background()
	tok := NewCancelToken()

	go func() {
		time.Sleep(20 * time.Millisecond)
		tok.Cancel()
	}()

	start := time.Now()
	Delay(ctx, 5*time.Second, 5*time.Millisecond, tok)
	elapsed := time.Since(start)

	// Bounded cancellation latency: well under the full duration, roughly
	// cancel point plus one quantum (generous margin for slow CI).
	if elapsed > 500*time.Millisecond {
		t.Errorf("Delay returned after %v, want prompt return after cancellation", elapsed)
	}
}

func TestDelayPreFiredToken(t *testing.T) {
	tok := NewCancelToken()
	tok.Cancel()

	start := time.Now()
	Delay(context.Background(), 5*time.Second, 50*time.Millisecond, tok)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Delay with pre-fired token took %v, want immediate return", elapsed)
	}
}

func TestDelayContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tok := NewCancelToken()

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	Delay(ctx, 5*time.Second, 5*time.Millisecond, tok)
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Delay returned after %v, want prompt return on context cancel", elapsed)
	}
}

func TestDelayNilToken(t *testing.T) {
	start := time.Now()
	Delay(context.Background(), 20*time.Millisecond, 5*time.Millisecond, nil)
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Delay with nil token returned after %v, want full sleep", elapsed)
	}
}
