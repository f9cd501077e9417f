package history

import (
	"context"
	"strings"
	"testing"
)

func TestRecentContextSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, NewMessage("conv-1", RoleUser, "what is a channel?")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, NewMessage("conv-1", RoleAssistant, "A typed conduit between goroutines.")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	r := NewRecaller(store, "conv-1", 3)
	summary := r.RecentContextSummary(ctx)

	lines := strings.Split(summary, "\n")
	if len(lines) != 2 {
		t.Fatalf("summary has %d lines, want 2:\n%s", len(lines), summary)
	}
	if lines[0] != "User: what is a channel?" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "Assistant: A typed conduit between goroutines." {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRecentContextSummaryEmpty(t *testing.T) {
	store := newTestStore(t)

	r := NewRecaller(store, "no-such-conversation", 3)
	if got := r.RecentContextSummary(context.Background()); got != "" {
		t.Errorf("summary = %q, want empty", got)
	}
}

func TestRecentContextSummaryTruncatesLongMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	long := strings.Repeat("很长的消息", 100)
	if err := store.Append(ctx, NewMessage("conv-1", RoleUser, long)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	r := NewRecaller(store, "conv-1", 3)
	summary := r.RecentContextSummary(ctx)
	if len([]rune(summary)) > len("User: ")+241 {
		t.Errorf("summary not truncated: %d runes", len([]rune(summary)))
	}
	if !strings.HasSuffix(summary, "…") {
		t.Errorf("truncated summary missing ellipsis: %q", summary[len(summary)-20:])
	}
}
