package engine

import "context"

// Hooks fans events out to every registered hook.
type Hooks []Hook

func (hs Hooks) OnSessionStart(ctx context.Context, s *ThinkingSession) {
	for _, h := range hs {
		h.OnSessionStart(ctx, s)
	}
}

func (hs Hooks) OnStateChange(ctx context.Context, s *ThinkingSession, from, to SessionState) {
	for _, h := range hs {
		h.OnStateChange(ctx, s, from, to)
	}
}

func (hs Hooks) OnThought(ctx context.Context, s *ThinkingSession, th Thought) {
	for _, h := range hs {
		h.OnThought(ctx, s, th)
	}
}

func (hs Hooks) OnGenerationFallback(ctx context.Context, s *ThinkingSession, strategy string, err error) {
	for _, h := range hs {
		h.OnGenerationFallback(ctx, s, strategy, err)
	}
}

func (hs Hooks) OnFinalized(ctx context.Context, s *ThinkingSession) {
	for _, h := range hs {
		h.OnFinalized(ctx, s)
	}
}
