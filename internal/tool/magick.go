package tool

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/histogram"
)

// Extractor builds a ranked palette from ImageMagick's histogram output.
type Extractor struct {
	magick       string
	maxDimension int
	runner       ProcessRunner
	logger       hclog.Logger
}

// NewExtractor creates an Extractor from cfg.
func NewExtractor(cfg Config, opts ...Option) *Extractor {
	o := newOptions(opts)
	e := &Extractor{
		magick:       cfg.ResolveMagick(),
		maxDimension: cfg.MaxDimension,
		runner:       o.runner,
		logger:       o.logger,
	}
	if e.maxDimension < 1 {
		e.maxDimension = DefaultMaxDimension
	}
	return e
}

// Args returns the ImageMagick arguments used to analyse imagePath.
func (e *Extractor) Args(imagePath string, colours int) []string {
	geometry := fmt.Sprintf("%dx%d>", e.maxDimension, e.maxDimension)
	return []string{
		safeInputPath(imagePath),
		"-resize", geometry,
		"-colors", strconv.Itoa(colours),
		"-format", "%c",
		"histogram:info:-",
	}
}

// Extract runs ImageMagick on imagePath and returns at most colours entries,
// most frequent first. A failed invocation returns a *ToolError; the palette
// is either complete or not returned at all.
func (e *Extractor) Extract(ctx context.Context, imagePath string, colours int) (*colour.Palette, error) {
	if colours < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", colours)
	}

	args := e.Args(imagePath, colours)
	e.logger.Debug("running histogram", "tool", e.magick, "args", args)

	start := time.Now()
	stdout, stderr, err := e.runner.Run(ctx, e.magick, args, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("histogram interrupted: %w", ctxErr)
		}
		toolErr := newToolError(e.magick, args, stdout, stderr, err)
		e.logger.Debug("histogram failed", "tool", e.magick, "exit_code", toolErr.ExitCode, "duration", time.Since(start))
		return nil, toolErr
	}
	if len(stderr) > 0 {
		e.logger.Warn("histogram reported warnings", "tool", e.magick, "stderr", strings.TrimSpace(string(stderr)))
	}

	palette, err := histogram.Parse(bytes.NewReader(stdout))
	if err != nil {
		return nil, err
	}

	e.logger.Debug("histogram parsed", "entries", palette.Len(), "duration", time.Since(start))
	return palette, nil
}

// safeInputPath stops a file name starting with "-" being read as an option.
func safeInputPath(p string) string {
	if strings.HasPrefix(p, "-") {
		return "./" + p
	}
	return p
}
