package cli

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// newLogger returns the logger for a command run. Warnings are shown by
// default, everything with --verbose, and only errors with --quiet.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  level,
	})
}
