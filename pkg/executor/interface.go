package executor

import "context"

// Executor defines the interface for invoking external media tools
type Executor interface {
	// Execute runs the command and returns captured stdout and stderr.
	// A non-zero exit returns an error alongside whatever output was captured.
	Execute(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)

	// LookPath reports whether the named tool is installed, returning a
	// *ToolMissingError when it is not.
	LookPath(name string) error
}
