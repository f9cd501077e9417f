package engine

import (
	"context"
	"log"
	"sync"
	"time"
)

// Engine owns the single active thinking session: its lifecycle state
// machine and the one-slot registry enforcing that at most one session runs
// process-wide. Only the Engine and its Streamer ever mutate a session.
type Engine struct {
	sink     DisplaySink
	gen      *Generator
	streamer *Streamer
	hooks    Hooks
	opts     Options

	mu     sync.Mutex
	active *ThinkingSession
}

// New creates a thinking engine. tg and cp may be nil: generation then runs
// on templates alone. A nil sink is tolerated and behaves like a failing one
// (the session finalizes early instead of crashing).
func New(sink DisplaySink, tg TextGenerator, cp ContextProvider, hooks Hooks, opts Options) *Engine {
	opts = opts.withDefaults()
	if hooks == nil {
		hooks = DefaultHooks()
	}
	return &Engine{
		sink:     sink,
		gen:      NewGenerator(tg, cp, hooks, opts.MaxThoughtRunes, opts.Rand),
		streamer: NewStreamer(sink, opts),
		hooks:    hooks,
		opts:     opts,
	}
}

// Start begins a thinking session for userMessage, or re-attaches to the
// session already running: a duplicate start is a no-op that returns the
// existing completion signal. The signal resolves when the session reaches
// the finalized state — always, whatever goes wrong inside.
func (e *Engine) Start(ctx context.Context, userMessage string) *CompletionSignal {
	e.mu.Lock()
	if e.active != nil {
		sig := e.active.signal
		e.mu.Unlock()
		return sig
	}
	s := newSession(userMessage)
	e.active = s
	e.mu.Unlock()

	go e.run(ctx, s)
	return s.signal
}

// RequestNaturalTermination signals that the real response has arrived.
// Synchronous, fire-and-forget, idempotent; with no active session it is a
// no-op.
func (e *Engine) RequestNaturalTermination() {
	e.mu.Lock()
	s := e.active
	e.mu.Unlock()
	if s == nil {
		return
	}
	s.cancel.Cancel()
}

// IsActive reports whether a session is currently running.
func (e *Engine) IsActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil && e.active.State() != StateFinalized
}

// CompletionSignal returns the active session's completion future, or nil
// when idle.
func (e *Engine) CompletionSignal() *CompletionSignal {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return nil
	}
	return e.active.signal
}

func (e *Engine) run(ctx context.Context, s *ThinkingSession) {
	defer e.finalize(ctx, s)

	e.hooks.OnSessionStart(ctx, s)
	e.transition(ctx, s, StateStreamingInitial)

	if e.sink == nil {
		// Missing sink is a non-fatal error: finalize without rendering.
		log.Printf("thinking session=%s has no display sink, ending early", s.ID)
		return
	}

	batch := e.gen.InitialBatch(ctx, s)
	for i, th := range batch {
		if s.cancel.Canceled() || ctx.Err() != nil {
			return // early exit before the continuous phase: no closing line
		}
		full := s.appendThought(th)
		e.hooks.OnThought(ctx, s, th)
		if err := e.streamer.StreamDelta(ctx, s, full, s.cancel); err != nil {
			log.Printf("thinking session=%s ending early: %v", s.ID, err)
			return
		}
		if i < len(batch)-1 {
			Delay(ctx, e.opts.InitialGap, e.opts.Quantum, s.cancel)
		}
	}

	if s.cancel.Canceled() || ctx.Err() != nil {
		return
	}
	e.transition(ctx, s, StateStreamingContinuous)

	// Unbounded by design: real agent latency has no ceiling, so the loop
	// has no iteration cap and runs until the token fires.
	for {
		Delay(ctx, e.continuousGap(), e.opts.Quantum, s.cancel)
		if s.cancel.Canceled() || ctx.Err() != nil {
			break
		}
		th := e.gen.NextThought(ctx, s)
		full := s.appendThought(th)
		e.hooks.OnThought(ctx, s, th)
		if err := e.streamer.StreamDelta(ctx, s, full, s.cancel); err != nil {
			log.Printf("thinking session=%s ending early: %v", s.ID, err)
			return
		}
	}

	if ctx.Err() != nil {
		return // context cancellation is a shutdown, not a handoff
	}

	// Natural termination: the real response has arrived. Append the fixed
	// closing line and render it in one step, not character-streamed.
	e.transition(ctx, s, StateEndingNaturally)
	full := s.appendClosing(closingLine(s.Lang))
	if err := e.streamer.RenderAll(s, full); err != nil {
		log.Printf("thinking session=%s closing render failed: %v", s.ID, err)
	}
}

// finalize is the session's one exit point. Whatever happened above —
// normal handoff, sink failure, panic in a hook or sink — the state becomes
// finalized, the completion signal resolves, and the registry slot clears so
// a new session can begin. Callers must never be left waiting on a signal
// that will not resolve.
func (e *Engine) finalize(ctx context.Context, s *ThinkingSession) {
	if r := recover(); r != nil {
		log.Printf("thinking session=%s aborted by panic: %v", s.ID, r)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("thinking session=%s hook panic during finalize: %v", s.ID, r)
		}
		e.mu.Lock()
		s.signal.resolve()
		if e.active == s {
			e.active = nil
		}
		e.mu.Unlock()
	}()

	prev := s.setState(StateFinalized)
	e.hooks.OnStateChange(ctx, s, prev, StateFinalized)
	e.hooks.OnFinalized(ctx, s)
}

func (e *Engine) transition(ctx context.Context, s *ThinkingSession, to SessionState) {
	prev := s.setState(to)
	e.hooks.OnStateChange(ctx, s, prev, to)
}

func (e *Engine) continuousGap() time.Duration {
	span := e.opts.ContinuousGapMax - e.opts.ContinuousGapMin
	if span <= 0 {
		return e.opts.ContinuousGapMin
	}
	return e.opts.ContinuousGapMin + time.Duration(e.opts.Rand.Int63n(int64(span)))
}
