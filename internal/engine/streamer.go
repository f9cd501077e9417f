package engine

import (
	"context"
	"math/rand"
	"time"
	"unicode/utf8"
)

// Streamer renders a growing text buffer to the display sink one rune at a
// time. The sink always receives the entire content-so-far, not individual
// characters, because downstream formatting re-runs on every step and is
// idempotent.
type Streamer struct {
	sink DisplaySink
	opts Options
	rnd  *rand.Rand
}

// NewStreamer creates a content streamer for the given sink.
func NewStreamer(sink DisplaySink, opts Options) *Streamer {
	opts = opts.withDefaults()
	return &Streamer{sink: sink, opts: opts, rnd: opts.Rand}
}

// StreamDelta emits the runes between the session's rendered offset and the
// end of newFull, pausing a small randomized duration between runes. The
// cancellation token is checked before every rune; on cancellation the
// partial buffer up to the interruption point is the final rendered state
// for that thought. The rendered offset unconditionally ends at
// len(newFull) so the cursor invariant holds even when interrupted.
func (st *Streamer) StreamDelta(ctx context.Context, s *ThinkingSession, newFull string, tok *CancelToken) error {
	defer s.setRenderedOffset(len(newFull))

	i := s.RenderedOffset()
	for i < len(newFull) {
		if tok.Canceled() || ctx.Err() != nil {
			return nil
		}
		_, size := utf8.DecodeRuneInString(newFull[i:])
		i += size

		if err := st.sink.RenderFull(newFull[:i]); err != nil {
			return &SinkError{Err: err}
		}
		s.setRenderedOffset(i)

		Delay(ctx, st.charDelay(), st.opts.Quantum, tok)
	}
	return nil
}

// RenderAll pushes the full content to the sink in one step, advancing the
// rendered offset. Used for the closing line, which is not character-streamed.
func (st *Streamer) RenderAll(s *ThinkingSession, full string) error {
	defer s.setRenderedOffset(len(full))
	if err := st.sink.RenderFull(full); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

func (st *Streamer) charDelay() time.Duration {
	span := st.opts.CharDelayMax - st.opts.CharDelayMin
	if span <= 0 {
		return st.opts.CharDelayMin
	}
	return st.opts.CharDelayMin + time.Duration(st.rnd.Int63n(int64(span)))
}
