package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/wellszhang/mcschat/internal/prompts"
)

// Generator produces the next unit of reasoning text. It never fails the
// caller: two generation strategies are attempted in order, each catching its
// own failure, and the template fallback cannot fail.
type Generator struct {
	tg      TextGenerator   // may be nil (templates only)
	context ContextProvider // may be nil
	hooks   Hooks
	maxLen  int        // truncation bound, in runes
	rnd     *rand.Rand // injected sampler for reproducible batch selection
}

// NewGenerator creates a thought generator. tg and cp may be nil; rnd must
// not be.
func NewGenerator(tg TextGenerator, cp ContextProvider, hooks Hooks, maxLen int, rnd *rand.Rand) *Generator {
	if maxLen <= 0 {
		maxLen = DefaultOptions().MaxThoughtRunes
	}
	return &Generator{tg: tg, context: cp, hooks: hooks, maxLen: maxLen, rnd: rnd}
}

// NextThought returns one thought for the continuous phase. Strategy order:
// contextual generated, simple generated, template fallback.
func (g *Generator) NextThought(ctx context.Context, s *ThinkingSession) Thought {
	index := s.ThoughtIndex()

	if g.tg != nil {
		if text, err := g.contextualThought(ctx, s, index); err == nil {
			return Thought{Text: text, Origin: OriginGenerated, Index: index}
		} else {
			g.hooks.OnGenerationFallback(ctx, s, "contextual", &GenerationError{Strategy: "contextual", Err: err})
		}

		if text, err := g.simpleThought(ctx, s); err == nil {
			return Thought{Text: text, Origin: OriginGenerated, Index: index}
		} else {
			g.hooks.OnGenerationFallback(ctx, s, "simple", &GenerationError{Strategy: "simple", Err: err})
		}
	}

	bank := continuousBank(s.Lang)
	return Thought{Text: bank[index%len(bank)], Origin: OriginTemplate, Index: index}
}

// InitialBatch returns the opening run of 3-5 thoughts. A generated batch is
// preferred; the topic-flavored template bank is the fallback. Either way the
// same selection rule applies: keep the first item (question framing) and the
// last (preparation to answer), sample the middle.
func (g *Generator) InitialBatch(ctx context.Context, s *ThinkingSession) []Thought {
	items, origin := g.initialItems(ctx, s)
	selected := g.selectInitial(items)

	out := make([]Thought, len(selected))
	for i, text := range selected {
		out[i] = Thought{Text: text, Origin: origin, Index: i}
	}
	return out
}

func (g *Generator) initialItems(ctx context.Context, s *ThinkingSession) ([]string, ThoughtOrigin) {
	if g.tg != nil {
		if items, err := g.generatedBatch(ctx, s); err == nil {
			return items, OriginGenerated
		} else {
			g.hooks.OnGenerationFallback(ctx, s, "batch", &GenerationError{Strategy: "batch", Err: err})
		}
	}
	return initialBank(s.Lang, classifyTopic(s.UserMessage)), OriginTemplate
}

// selectInitial applies the batch selection rule. Deterministic given a fixed
// sampler seed.
func (g *Generator) selectInitial(items []string) []string {
	const maxInitial = 5
	if len(items) <= 3 {
		return items
	}

	want := 3 + g.rnd.Intn(maxInitial-2) // 3..5
	if want > len(items) {
		want = len(items)
	}

	middle := len(items) - 2 // candidates between first and last
	keep := want - 2
	picked := g.rnd.Perm(middle)[:keep]
	sort.Ints(picked) // preserve generation order

	out := make([]string, 0, want)
	out = append(out, items[0])
	for _, idx := range picked {
		out = append(out, items[idx+1])
	}
	out = append(out, items[len(items)-1])
	return out
}

func (g *Generator) contextualThought(ctx context.Context, s *ThinkingSession, index int) (string, error) {
	summary := ""
	if g.context != nil {
		summary = g.context.RecentContextSummary(ctx)
	}
	// After the first few thoughts, tell the model what it already "thought"
	// so the monologue doesn't circle.
	digest := ""
	if index >= 3 {
		digest = thoughtDigest(s.Thoughts(), 4)
	}

	prompt, err := prompts.BuildContextualThought(s.Lang, s.UserMessage, summary, digest)
	if err != nil {
		return "", err
	}
	raw, err := g.tg.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return g.postProcess(raw)
}

func (g *Generator) simpleThought(ctx context.Context, s *ThinkingSession) (string, error) {
	prompt, err := prompts.BuildSimpleThought(s.Lang, s.UserMessage)
	if err != nil {
		return "", err
	}
	raw, err := g.tg.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return g.postProcess(raw)
}

func (g *Generator) generatedBatch(ctx context.Context, s *ThinkingSession) ([]string, error) {
	prompt, err := prompts.BuildThoughtBatch(s.Lang, s.UserMessage)
	if err != nil {
		return nil, err
	}
	raw, err := g.tg.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var items []string
	for _, line := range strings.Split(raw, "\n") {
		cleaned, err := g.postProcessLine(line)
		if err != nil {
			continue
		}
		items = append(items, cleaned)
	}
	if len(items) < 3 {
		return nil, fmt.Errorf("batch produced %d usable lines, need at least 3", len(items))
	}
	return items, nil
}

// postProcess cleans one generated completion: first line only, markup and
// wrapping quotes stripped, truncated, empty rejected.
func (g *Generator) postProcess(raw string) (string, error) {
	line := raw
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return g.postProcessLine(line)
}

func (g *Generator) postProcessLine(line string) (string, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•·")
	line = trimListNumber(line)
	line = strings.Trim(line, "\"'`“”‘’「」")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errEmptyThought
	}

	runes := []rune(line)
	if len(runes) > g.maxLen {
		line = string(runes[:g.maxLen])
	}
	return line, nil
}

// trimListNumber strips a leading "1." / "2)" style list marker.
func trimListNumber(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) {
		return s
	}
	if s[i] == '.' || s[i] == ')' {
		return strings.TrimSpace(s[i+1:])
	}
	if strings.HasPrefix(s[i:], "、") {
		return strings.TrimSpace(s[i+len("、"):])
	}
	return s
}

// thoughtDigest joins the last n thought texts into a compact single line.
func thoughtDigest(thoughts []Thought, n int) string {
	if len(thoughts) == 0 {
		return ""
	}
	start := len(thoughts) - n
	if start < 0 {
		start = 0
	}
	parts := make([]string, 0, n)
	for _, th := range thoughts[start:] {
		parts = append(parts, th.Text)
	}
	return strings.Join(parts, " / ")
}
