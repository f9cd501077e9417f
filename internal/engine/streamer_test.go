package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

// recordSink captures every RenderFull call.
type recordSink struct {
	mu    sync.Mutex
	calls []string
	fail  bool
	// afterN fires the token once n calls have been made.
	afterN int
	tok    *CancelToken
}

func (r *recordSink) RenderFull(content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("sink down")
	}
	r.calls = append(r.calls, content)
	if r.tok != nil && len(r.calls) >= r.afterN {
		r.tok.Cancel()
	}
	return nil
}

func (r *recordSink) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func fastStreamOptions() Options {
	return Options{
		Quantum:      time.Millisecond,
		CharDelayMin: time.Millisecond,
		CharDelayMax: 2 * time.Millisecond,
	}.withDefaults()
}

// assertPrefixMonotonic checks the monotonic-rendering property: each call's
// argument is a prefix-extension of the previous one.
func assertPrefixMonotonic(t *testing.T, calls []string) {
	t.Helper()
	for i := 1; i < len(calls); i++ {
		if len(calls[i]) <= len(calls[i-1]) || !strings.HasPrefix(calls[i], calls[i-1]) {
			t.Fatalf("render call %d is not a prefix-extension:\nprev=%q\ncurr=%q", i, calls[i-1], calls[i])
		}
	}
}

func TestStreamDeltaRendersFullPrefixes(t *testing.T) {
	sink := &recordSink{}
	st := NewStreamer(sink, fastStreamOptions())
	s := newSession("q")
	tok := NewCancelToken()

	first := s.appendThought(Thought{Text: "abc", Origin: OriginTemplate})
	if err := st.StreamDelta(context.Background(), s, first, tok); err != nil {
		t.Fatalf("StreamDelta: %v", err)
	}
	second := s.appendThought(Thought{Text: "de", Origin: OriginTemplate, Index: 1})
	if err := st.StreamDelta(context.Background(), s, second, tok); err != nil {
		t.Fatalf("StreamDelta: %v", err)
	}

	calls := sink.snapshot()
	assertPrefixMonotonic(t, calls)

	// Only the delta is re-emitted: 3 runes, then the separator and 2 more.
	wantCalls := utf8.RuneCountInString(second)
	if len(calls) != wantCalls {
		t.Errorf("render calls = %d, want %d (one per rune, no re-emission)", len(calls), wantCalls)
	}
	if last := calls[len(calls)-1]; last != "abc\n\nde" {
		t.Errorf("final render = %q, want %q", last, "abc\n\nde")
	}
	if s.RenderedOffset() != len(second) {
		t.Errorf("renderedOffset = %d, want %d", s.RenderedOffset(), len(second))
	}
}

func TestStreamDeltaMultibyteRunes(t *testing.T) {
	sink := &recordSink{}
	st := NewStreamer(sink, fastStreamOptions())
	s := newSession("问")
	tok := NewCancelToken()

	full := s.appendThought(Thought{Text: "让我想想这个问题", Origin: OriginTemplate})
	if err := st.StreamDelta(context.Background(), s, full, tok); err != nil {
		t.Fatalf("StreamDelta: %v", err)
	}

	calls := sink.snapshot()
	if len(calls) != utf8.RuneCountInString(full) {
		t.Errorf("render calls = %d, want %d (one per rune)", len(calls), utf8.RuneCountInString(full))
	}
	for i, c := range calls {
		if !utf8.ValidString(c) {
			t.Fatalf("render call %d is not valid UTF-8: %q (rune split mid-character)", i, c)
		}
	}
	assertPrefixMonotonic(t, calls)
}

func TestStreamDeltaCancelMidThought(t *testing.T) {
	tok := NewCancelToken()
	sink := &recordSink{afterN: 3, tok: tok}
	st := NewStreamer(sink, fastStreamOptions())
	s := newSession("q")

	full := s.appendThought(Thought{Text: "a long thought that will be interrupted", Origin: OriginTemplate})
	if err := st.StreamDelta(context.Background(), s, full, tok); err != nil {
		t.Fatalf("StreamDelta: %v", err)
	}

	calls := sink.snapshot()
	if len(calls) >= utf8.RuneCountInString(full) {
		t.Errorf("render calls = %d, want fewer than %d after mid-thought cancellation", len(calls), utf8.RuneCountInString(full))
	}
	// The cursor invariant holds even when interrupted: offset ends at the
	// full length so a later render never re-emits the skipped tail.
	if s.RenderedOffset() != len(full) {
		t.Errorf("renderedOffset = %d, want %d after interruption", s.RenderedOffset(), len(full))
	}
}

func TestStreamDeltaSinkFailure(t *testing.T) {
	sink := &recordSink{fail: true}
	st := NewStreamer(sink, fastStreamOptions())
	s := newSession("q")

	full := s.appendThought(Thought{Text: "abc", Origin: OriginTemplate})
	err := st.StreamDelta(context.Background(), s, full, NewCancelToken())

	var sinkErr *SinkError
	if !errors.As(err, &sinkErr) {
		t.Fatalf("StreamDelta error = %v, want *SinkError", err)
	}
	if s.RenderedOffset() != len(full) {
		t.Errorf("renderedOffset = %d, want %d even after sink failure", s.RenderedOffset(), len(full))
	}
}

func TestRenderAll(t *testing.T) {
	sink := &recordSink{}
	st := NewStreamer(sink, fastStreamOptions())
	s := newSession("q")

	full := s.appendClosing("Okay, I'm ready to answer.")
	if err := st.RenderAll(s, full); err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	calls := sink.snapshot()
	if len(calls) != 1 {
		t.Fatalf("render calls = %d, want 1 (closing line is not character-streamed)", len(calls))
	}
	if calls[0] != full {
		t.Errorf("rendered %q, want %q", calls[0], full)
	}
}
