package tool

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ToolError reports an external tool that failed to start or exited non-zero.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int    // -1 when the process never ran to completion
	Output   string // captured stderr followed by stdout
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// newToolError builds a ToolError from a runner result.
func newToolError(name string, args []string, stdout, stderr []byte, err error) *ToolError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	var out strings.Builder
	out.Write(stderr)
	if len(stderr) > 0 && len(stdout) > 0 && stderr[len(stderr)-1] != '\n' {
		out.WriteByte('\n')
	}
	out.Write(stdout)

	return &ToolError{
		Tool:     name,
		Args:     args,
		ExitCode: code,
		Output:   strings.TrimRight(out.String(), "\n"),
		Err:      err,
	}
}
