package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/wellszhang/mcschat/internal/engine"
)

// Summarizer produces LLM-generated titles and summaries for conversations.
type Summarizer struct {
	tg engine.TextGenerator
}

// NewSummarizer creates a conversation summarizer.
func NewSummarizer(tg engine.TextGenerator) *Summarizer {
	return &Summarizer{tg: tg}
}

// GenerateTitle generates a short 3-5 word title for a conversation.
func (s *Summarizer) GenerateTitle(ctx context.Context, msgs []Message) (string, error) {
	if len(msgs) == 0 {
		return "New Conversation", nil
	}

	// The opening exchanges carry the intent; the rest is noise for a title.
	limit := 10
	if len(msgs) < limit {
		limit = len(msgs)
	}

	prompt := fmt.Sprintf(
		"Generate a short, concise title (3-5 words) for this conversation. Do not use quotes or punctuation.\n\nConversation:\n%s\n\nTitle:",
		renderForSummary(msgs[:limit]))

	raw, err := s.tg.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate title: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

// GenerateSummary condenses a conversation so context survives restarts.
func (s *Summarizer) GenerateSummary(ctx context.Context, msgs []Message) (string, error) {
	if len(msgs) == 0 {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"Summarize this conversation to preserve context for a future session. Focus on the user's goals, answers given, and open questions. Be concise.\n\nConversation:\n%s\n\nSummary:",
		renderForSummary(msgs))

	raw, err := s.tg.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

func renderForSummary(msgs []Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		label := "User"
		if m.Role == RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, m.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
