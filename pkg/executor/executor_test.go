package executor

import (
	"errors"
	"testing"
)

func TestTailLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"empty input", "", 5, ""},
		{"fewer lines than limit", "a\nb", 5, "a\nb"},
		{"exactly at limit", "a\nb\nc", 3, "a\nb\nc"},
		{"more lines than limit", "a\nb\nc\nd", 2, "c\nd"},
		{"trailing newline ignored", "a\nb\nc\n", 2, "b\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TailLines(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("TailLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookPathMissing(t *testing.T) {
	e := New()
	err := e.LookPath("definitely-not-a-real-tool-12345")
	if err == nil {
		t.Fatal("LookPath() should fail for a nonexistent tool")
	}

	var missing *ToolMissingError
	if !errors.As(err, &missing) {
		t.Errorf("LookPath() error = %T, want *ToolMissingError", err)
	}
	if missing.Tool != "definitely-not-a-real-tool-12345" {
		t.Errorf("Tool = %q, want the looked-up name", missing.Tool)
	}
}
