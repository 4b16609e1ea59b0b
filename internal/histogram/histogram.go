// Package histogram parses the text histogram ImageMagick prints for
// `-format %c histogram:info:-` into a ranked colour palette.
//
// A typical row looks like:
//
//	  18831: (42.1,61.9,80) #2A3E50 srgb(42,62,80)
//
// Rows carry the pixel count, a parenthesised channel tuple and a hex code.
// Anything else (headers, blank lines, malformed rows) is ignored.
package histogram

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/security"
)

var (
	// countPattern captures the pixel count and the first three channel values.
	countPattern = regexp.MustCompile(`\s*(\d+):\s*\(([\d.]+),([\d.]+),([\d.]+)`)

	// hexPattern captures the first six hex digits of the colour code.
	hexPattern = regexp.MustCompile(`#([0-9A-Fa-f]{6})`)
)

// maxLineSize bounds a single histogram row.
const maxLineSize = 1 << 20

// ParseLine parses a single histogram row.
// The second return value is false when the row is not a histogram entry.
func ParseLine(line string) (colour.Entry, bool) {
	m := countPattern.FindStringSubmatch(line)
	h := hexPattern.FindStringSubmatch(line)
	if m == nil || h == nil {
		return colour.Entry{}, false
	}

	count, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return colour.Entry{}, false
	}

	var channels [3]uint8
	for i := range channels {
		v, ok := truncateChannel(m[i+2])
		if !ok {
			return colour.Entry{}, false
		}
		channels[i] = v
	}

	return colour.Entry{
		Count: count,
		Hex:   "#" + strings.ToLower(h[1]),
		RGB:   colour.RGB{R: channels[0], G: channels[1], B: channels[2]},
	}, true
}

// truncateChannel converts a channel value to an integer by truncation.
// Values above 255 are clamped.
func truncateChannel(s string) (uint8, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f >= 256 {
		return 255, true
	}
	return security.SafeUint8(int(f)), true
}

// Parse reads histogram rows from r and returns them ranked by pixel count.
// Only read failures produce an error; unparseable rows are skipped.
func Parse(r io.Reader) (*colour.Palette, error) {
	var entries []colour.Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		if e, ok := ParseLine(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read histogram: %w", err)
	}

	palette := colour.NewPalette(entries)
	palette.Sort()
	return palette, nil
}
