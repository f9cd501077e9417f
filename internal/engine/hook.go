package engine

import "context"

// Hook receives engine lifecycle events. This is the observability surface
// the rest of the application (logging, quality metrics) consumes; hooks
// must not mutate the session.
type Hook interface {
	OnSessionStart(ctx context.Context, s *ThinkingSession)
	OnStateChange(ctx context.Context, s *ThinkingSession, from, to SessionState)
	OnThought(ctx context.Context, s *ThinkingSession, th Thought)
	OnGenerationFallback(ctx context.Context, s *ThinkingSession, strategy string, err error)
	OnFinalized(ctx context.Context, s *ThinkingSession)
}
