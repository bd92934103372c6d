package cli

import (
	"path/filepath"
	"testing"

	"github.com/rcliao/assistant-memory/internal/persist"
)

func TestBackendEnvOverridesTarget(t *testing.T) {
	t.Setenv("ASSISTANT_MEMORY_DB", filepath.Join(t.TempDir(), "memory.db"))
	t.Setenv("ASSISTANT_MEMORY_BACKEND", "json")

	port, err := openPort()
	if err != nil {
		t.Fatalf("open port: %v", err)
	}
	defer port.Close()

	if _, ok := port.(*persist.File); !ok {
		t.Fatalf("expected JSON file port, got %T", port)
	}
}

func TestBackendEnvRejectsUnknown(t *testing.T) {
	t.Setenv("ASSISTANT_MEMORY_DB", filepath.Join(t.TempDir(), "memory.db"))
	t.Setenv("ASSISTANT_MEMORY_BACKEND", "mysql")

	if _, err := openPort(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" go, parser ,,cli ")
	want := []string{"go", "parser", "cli"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
