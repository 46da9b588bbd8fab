package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command, capturing stdout and stderr separately.
// Callers that need diagnostics from a failed run get the captured stderr
// back even when err is non-nil.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), stderr.String(), nil
}

// LookPath checks tool availability up front so callers can report a
// missing installation instead of a cryptic exec failure.
func (e *implExecutor) LookPath(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return &ToolMissingError{Tool: name}
	}
	return nil
}

// ToolMissingError indicates a required external tool is not installed
type ToolMissingError struct {
	Tool string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s not found in PATH. Install ffmpeg (mac: brew install ffmpeg; ubuntu: sudo apt-get install ffmpeg)", e.Tool)
}

// TailLines returns the last n lines of s, keeping diagnostic excerpts bounded.
func TailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
