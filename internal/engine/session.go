package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wellszhang/mcschat/internal/prompts"
)

// SessionState is the lifecycle state of a thinking session.
type SessionState string

const (
	StateIdle                SessionState = "idle"
	StateStreamingInitial    SessionState = "streaming_initial"
	StateStreamingContinuous SessionState = "streaming_continuous"
	StateEndingNaturally     SessionState = "ending_naturally"
	StateFinalized           SessionState = "finalized"
)

// ThinkingSession is one run of the engine, scoped to one user message
// awaiting one agent response. The content buffer is append-only for the
// session's lifetime and immutable once finalized.
type ThinkingSession struct {
	ID          string
	UserMessage string
	Lang        prompts.Language

	signal *CompletionSignal
	cancel *CancelToken

	mu             sync.Mutex
	state          SessionState
	content        string
	renderedOffset int
	thoughts       []Thought
}

func newSession(userMessage string) *ThinkingSession {
	return &ThinkingSession{
		ID:          uuid.NewString(),
		UserMessage: userMessage,
		Lang:        prompts.Detect(userMessage),
		signal:      newCompletionSignal(),
		cancel:      NewCancelToken(),
		state:       StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *ThinkingSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ThinkingSession) setState(next SessionState) (prev SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.state
	s.state = next
	return prev
}

// Content returns the accumulated thinking text.
func (s *ThinkingSession) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// RenderedOffset returns how many bytes of the content have been pushed to
// the display sink. It never exceeds len(Content()) and never decreases.
func (s *ThinkingSession) RenderedOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderedOffset
}

func (s *ThinkingSession) setRenderedOffset(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.renderedOffset {
		s.renderedOffset = n
	}
}

// ThoughtIndex returns the ordinal count of thoughts appended so far. It is
// what lets a render loop restart idempotently mid-session.
func (s *ThinkingSession) ThoughtIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.thoughts)
}

// Thoughts returns a copy of the thoughts appended so far.
func (s *ThinkingSession) Thoughts() []Thought {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Thought, len(s.thoughts))
	copy(out, s.thoughts)
	return out
}

// appendThought grows the buffer with one thought, separated from the
// previous content by a blank line, and returns the new full content.
func (s *ThinkingSession) appendThought(th Thought) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content != "" {
		s.content += "\n\n"
	}
	s.content += th.Text
	s.thoughts = append(s.thoughts, th)
	return s.content
}

// appendClosing appends the fixed closing line and returns the new full
// content. Unlike thoughts, the closing line is rendered in full at once.
func (s *ThinkingSession) appendClosing(line string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content != "" {
		s.content += "\n\n"
	}
	s.content += line
	return s.content
}

// CompletionSignal returns the session's one-shot completion future.
func (s *ThinkingSession) CompletionSignal() *CompletionSignal { return s.signal }
