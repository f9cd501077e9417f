package history

import (
	"path/filepath"
	"testing"
)

func newTestIndex(t *testing.T) *TranscriptIndex {
	t.Helper()
	idx, err := NewTranscriptIndex(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("NewTranscriptIndex: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestTranscriptSearch(t *testing.T) {
	idx := newTestIndex(t)

	msgs := []Message{
		NewMessage("conv-1", RoleUser, "how do I deploy the service to staging?"),
		NewMessage("conv-1", RoleAssistant, "Use the deploy pipeline with the staging profile."),
		NewMessage("conv-1", RoleUser, "what about database migrations?"),
		NewMessage("conv-2", RoleUser, "deploy keeps failing on conv two"),
	}
	if err := idx.BatchIndex(msgs); err != nil {
		t.Fatalf("BatchIndex: %v", err)
	}

	results, err := idx.Search("deploy", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("unscoped hits = %d, want 3", len(results))
	}

	scoped, err := idx.Search("deploy", "conv-1", 10)
	if err != nil {
		t.Fatalf("Search scoped: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("scoped hits = %d, want 2", len(scoped))
	}
	for _, r := range scoped {
		if r.ConversationID != "conv-1" {
			t.Errorf("hit %s leaked from conversation %s", r.MessageID, r.ConversationID)
		}
	}

	none, err := idx.Search("kubernetes", "", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("hits for absent term = %d, want 0", len(none))
	}
}

func TestTranscriptSearchSingleIndexing(t *testing.T) {
	idx := newTestIndex(t)

	m := NewMessage("conv-1", RoleAssistant, "goroutines multiplex onto OS threads")
	if err := idx.IndexMessage(m); err != nil {
		t.Fatalf("IndexMessage: %v", err)
	}

	results, err := idx.Search("goroutines", "conv-1", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].MessageID != m.ID {
		t.Fatalf("results = %+v, want the indexed message", results)
	}
	if results[0].Role != RoleAssistant {
		t.Errorf("role = %s, want assistant", results[0].Role)
	}
}
