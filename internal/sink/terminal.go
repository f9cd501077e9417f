// Package sink renders thinking text to the terminal.
package sink

import (
	"fmt"
	"io"
	"sync"
)

// Terminal writes thinking content in dim gray with a 💭 header. It receives
// the full content-so-far on every call and prints only the unseen suffix,
// which makes redundant renders of the same prefix free.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	printed int
	started bool
}

// NewTerminal creates a terminal sink over w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// RenderFull implements engine.DisplaySink.
func (t *Terminal) RenderFull(content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A shorter buffer means a new session began without Finish; start over.
	if len(content) < t.printed {
		t.printed = 0
		t.started = false
	}

	if !t.started {
		if _, err := fmt.Fprint(t.w, "\x1b[90m💭 "); err != nil {
			return err
		}
		t.started = true
	}

	delta := content[t.printed:]
	if delta == "" {
		return nil
	}
	if _, err := fmt.Fprintf(t.w, "\x1b[90m%s", delta); err != nil {
		return err
	}
	t.printed = len(content)
	return nil
}

// Finish resets the color and closes the thinking block. Safe to call when
// nothing was rendered.
func (t *Terminal) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return
	}
	fmt.Fprint(t.w, "\x1b[0m\n\n")
	t.started = false
	t.printed = 0
}
