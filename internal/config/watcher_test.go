package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	m := NewManagerAt(t.TempDir())
	if err := m.Save(DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloads := make(chan *Config, 4)
	w, err := NewWatcher(m, func(cfg *Config) { reloads <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.debounce = 20 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	updated := DefaultConfig()
	updated.Model = "gpt-4o-mini"
	if err := m.Save(updated); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case cfg := <-reloads:
		if cfg.Model != "gpt-4o-mini" {
			t.Errorf("reloaded model = %q", cfg.Model)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	m := NewManagerAt(dir)
	if err := m.Save(DefaultConfig()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloads := make(chan *Config, 4)
	w, err := NewWatcher(m, func(cfg *Config) { reloads <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.debounce = 20 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-reloads:
		t.Fatal("reload fired for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
