package history

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	texts := []string{"how do I deploy?", "Run make deploy.", "and rollback?"}
	roles := []Role{RoleUser, RoleAssistant, RoleUser}
	for i := range texts {
		if err := store.Append(ctx, NewMessage("conv-1", roles[i], texts[i])); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Recent(ctx, "conv-1", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, m := range got {
		if m.Content != texts[i] {
			t.Errorf("message %d = %q, want %q (chronological order)", i, m.Content, texts[i])
		}
		if m.Role != roles[i] {
			t.Errorf("message %d role = %s, want %s", i, m.Role, roles[i])
		}
	}
}

func TestRecentLimitKeepsNewest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three", "four"} {
		if err := store.Append(ctx, NewMessage("conv-1", RoleUser, text)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Recent(ctx, "conv-1", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Content != "three" || got[1].Content != "four" {
		t.Errorf("Recent(2) = %+v, want the two newest in chronological order", got)
	}
}

func TestRecentScopedByConversation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, NewMessage("conv-1", RoleUser, "in one")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, NewMessage("conv-2", RoleUser, "in two")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.Recent(ctx, "conv-2", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Content != "in two" {
		t.Errorf("Recent(conv-2) = %+v", got)
	}

	empty, err := store.Recent(ctx, "conv-3", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Recent(unknown) = %+v, want empty", empty)
	}
}

func TestCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, NewMessage("conv-1", RoleUser, "msg")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := store.Count(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
}
