package engine

import (
	"context"
	"log"
)

// LoggerHook logs engine lifecycle events with the standard logger.
type LoggerHook struct{ L *log.Logger }

// DefaultHooks returns the hooks used when the caller supplies none.
func DefaultHooks() Hooks {
	return Hooks{LoggerHook{L: log.Default()}}
}

func (h LoggerHook) OnSessionStart(_ context.Context, s *ThinkingSession) {
	h.L.Printf("thinking session=%s lang=%s start", s.ID, s.Lang)
}

func (h LoggerHook) OnStateChange(_ context.Context, s *ThinkingSession, from, to SessionState) {
	h.L.Printf("thinking session=%s %s -> %s", s.ID, from, to)
}

func (h LoggerHook) OnThought(_ context.Context, s *ThinkingSession, th Thought) {
	preview := th.Text
	if len(preview) > 60 {
		preview = preview[:60] + "..."
	}
	h.L.Printf("thinking session=%s thought=%d origin=%s %q", s.ID, th.Index, th.Origin, preview)
}

func (h LoggerHook) OnGenerationFallback(_ context.Context, s *ThinkingSession, strategy string, err error) {
	h.L.Printf("thinking session=%s fallback from=%s class=%s error=%v",
		s.ID, strategy, ClassifyGenerationFailure(err), err)
}

func (h LoggerHook) OnFinalized(_ context.Context, s *ThinkingSession) {
	h.L.Printf("thinking session=%s finalized thoughts=%d rendered=%d bytes",
		s.ID, s.ThoughtIndex(), s.RenderedOffset())
}
