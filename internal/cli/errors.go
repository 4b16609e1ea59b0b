package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jmylchreest/swatch/internal/analyse"
	"github.com/jmylchreest/swatch/internal/colour"
)

// fallbackMessage is printed when ImageMagick and the ffmpeg fallback both fail.
const fallbackMessage = "Failed to analyze image with both ImageMagick and ffmpeg fallback."

// ReportError writes a human-readable description of err to w.
// Tool failures include the captured output of the tool that failed last.
// Messages are red only when w itself is a terminal.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	red := color.New(color.FgRed)
	if colour.SupportsANSIColours(w) {
		red.EnableColor()
	} else {
		red.DisableColor()
	}

	var fbErr *analyse.FallbackError
	if errors.As(err, &fbErr) {
		red.Fprintln(w, fallbackMessage)
		if out := fbErr.Output(); out != "" {
			fmt.Fprintln(w, out)
		}
		return
	}

	var inErr *analyse.InputError
	if errors.As(err, &inErr) {
		red.Fprintln(w, inErr.Error())
		return
	}

	red.Fprintf(w, "Error: %v\n", err)
}
