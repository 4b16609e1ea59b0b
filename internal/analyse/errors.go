package analyse

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/tool"
)

// Process exit statuses.
const (
	ExitInputNotFound     = 1
	ExitFallbackExhausted = 2
)

// ErrInputNotFound is matched by errors.Is for a missing input image.
var ErrInputNotFound = image.ErrNotFound

// InputError reports an input path that does not exist.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("File not found: %s", e.Path)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ExitCode is the process exit status for a missing input.
func (e *InputError) ExitCode() int {
	return ExitInputNotFound
}

// Stage names the fallback step that failed.
type Stage string

// Fallback stages.
const (
	StageTranscode Stage = "transcode"
	StageRetry     Stage = "retry"
)

// FallbackError reports that the primary tool and the transcode fallback both failed.
type FallbackError struct {
	Stage   Stage
	Primary *tool.ToolError
	Err     error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("fallback %s failed: %v", e.Stage, e.Err)
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}

// ExitCode is the process exit status once the fallback is exhausted.
func (e *FallbackError) ExitCode() int {
	return ExitFallbackExhausted
}

// Output returns the diagnostics of the last tool that ran.
func (e *FallbackError) Output() string {
	var toolErr *tool.ToolError
	if errors.As(e.Err, &toolErr) {
		return toolErr.Output
	}
	return e.Err.Error()
}
