package history

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"
)

// Recaller serves a compact summary of the most recent exchanges. It is the
// conversation-context source for contextual thought prompts.
type Recaller struct {
	store          *Store
	conversationID string
	turns          int // exchanges to include
	maxRunes       int // per-message truncation
}

// NewRecaller creates a context provider over the last turns exchanges of
// one conversation.
func NewRecaller(store *Store, conversationID string, turns int) *Recaller {
	if turns <= 0 {
		turns = 3
	}
	return &Recaller{
		store:          store,
		conversationID: conversationID,
		turns:          turns,
		maxRunes:       240,
	}
}

// RecentContextSummary renders the recent transcript as "User:"/"Assistant:"
// lines. Errors degrade to an empty summary; a thinking session must not
// fail because history is unavailable.
func (r *Recaller) RecentContextSummary(ctx context.Context) string {
	msgs, err := r.store.Recent(ctx, r.conversationID, r.turns*2)
	if err != nil {
		log.Printf("history recall failed: %v", err)
		return ""
	}
	if len(msgs) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, m := range msgs {
		label := "User"
		if m.Role == RoleAssistant {
			label = "Assistant"
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(truncateRunes(m.Content, r.maxRunes))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
