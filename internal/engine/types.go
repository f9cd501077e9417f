// Package engine implements the thinking simulation engine: while the real
// agent reply is in flight it synthesizes and streams plausible reasoning
// text, then hands off atomically the moment the reply arrives.
package engine

import (
	"context"
	"math/rand"
	"time"
)

// TextGenerator is the external text-generation collaborator. A call may
// fail; the engine never retries it (the fallback chain substitutes for
// retry).
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DisplaySink receives the entire thinking content so far after every render
// step. It must be idempotent and cheap to call repeatedly with growing
// prefixes of the same logical text.
type DisplaySink interface {
	RenderFull(content string) error
}

// ContextProvider supplies a short summary of recent conversation turns for
// contextual thought prompts. An empty result degrades to context-free
// prompts.
type ContextProvider interface {
	RecentContextSummary(ctx context.Context) string
}

// ThoughtOrigin tags where a thought came from. Diagnostics only; origin has
// no effect on rendering.
type ThoughtOrigin string

const (
	OriginTemplate  ThoughtOrigin = "template"
	OriginGenerated ThoughtOrigin = "generated"
)

// Thought is one short unit of synthesized reasoning text.
type Thought struct {
	Text   string
	Origin ThoughtOrigin
	Index  int
}

// Options holds the engine's pacing knobs.
type Options struct {
	Quantum          time.Duration // cancellation poll interval inside Delay
	CharDelayMin     time.Duration // typing cadence, lower bound per rune
	CharDelayMax     time.Duration // typing cadence, upper bound per rune
	InitialGap       time.Duration // pause between initial-batch thoughts
	ContinuousGapMin time.Duration // pause before each continuous thought
	ContinuousGapMax time.Duration
	MaxThoughtRunes  int        // post-processing truncation bound
	Rand             *rand.Rand // sampler; inject a seeded one for reproducibility
}

// DefaultOptions returns the pacing used in production.
func DefaultOptions() Options {
	return Options{
		Quantum:          50 * time.Millisecond,
		CharDelayMin:     20 * time.Millisecond,
		CharDelayMax:     60 * time.Millisecond,
		InitialGap:       600 * time.Millisecond,
		ContinuousGapMin: 2 * time.Second,
		ContinuousGapMax: 5 * time.Second,
		MaxThoughtRunes:  200,
		Rand:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// withDefaults fills zero fields so a partially specified Options (common in
// tests) still behaves.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Quantum <= 0 {
		o.Quantum = def.Quantum
	}
	if o.CharDelayMin <= 0 {
		o.CharDelayMin = def.CharDelayMin
	}
	if o.CharDelayMax < o.CharDelayMin {
		o.CharDelayMax = o.CharDelayMin
	}
	if o.InitialGap <= 0 {
		o.InitialGap = def.InitialGap
	}
	if o.ContinuousGapMin <= 0 {
		o.ContinuousGapMin = def.ContinuousGapMin
	}
	if o.ContinuousGapMax < o.ContinuousGapMin {
		o.ContinuousGapMax = o.ContinuousGapMin
	}
	if o.MaxThoughtRunes <= 0 {
		o.MaxThoughtRunes = def.MaxThoughtRunes
	}
	if o.Rand == nil {
		o.Rand = def.Rand
	}
	return o
}
