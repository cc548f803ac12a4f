package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"notes", "felt awful at the party", "trigger", "party", "count", 3, "dangling"})
	if len(out) != 7 {
		t.Fatalf("expected 7 items, got %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("notes should be redacted, got %v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") || strings.Contains(hashed, "party") {
		t.Fatalf("trigger should be hashed, got %v", out[3])
	}
	if out[5] != 3 || out[6] != "dangling" {
		t.Fatalf("other values should pass through, got %v", out)
	}
}

func TestHashValueIsStable(t *testing.T) {
	if hashValue("stress") != hashValue(" stress ") {
		t.Fatal("hash should ignore surrounding whitespace")
	}
	if hashValue("") != "" {
		t.Fatal("empty values hash to empty")
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "quiet", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.With("component", "test").Debug("hello", "notes", "secret")
	}
	Nop().Info("discarded")
}
