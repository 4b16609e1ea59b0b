// Package analyse drives a palette extraction from a path on disk: input
// validation, the primary ImageMagick attempt, and the single ffmpeg fallback.
package analyse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/compression"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/tool"
)

// PaletteExtractor produces a ranked palette from an image file.
type PaletteExtractor interface {
	Extract(ctx context.Context, imagePath string, colours int) (*colour.Palette, error)
}

// FrameTranscoder converts an input into a single still image at dest.
type FrameTranscoder interface {
	Transcode(ctx context.Context, input, dest string) error
}

// Result is a successful analysis.
type Result struct {
	// Source is the path the caller asked for.
	Source string

	// Palette is ranked by pixel count, most frequent first.
	Palette *colour.Palette

	// UsedFallback is true when the palette came from the transcoded frame.
	UsedFallback bool
}

// Analyser runs the extraction with its fallback.
type Analyser struct {
	Extractor  PaletteExtractor
	Transcoder FrameTranscoder
	Logger     hclog.Logger

	// ConvertedName is the file name of the transcoded frame inside the scratch directory.
	ConvertedName string

	// TempDir is the parent of scratch directories; empty means os.TempDir.
	TempDir string
}

// New creates an Analyser wired to ImageMagick and ffmpeg as configured by cfg.
func New(cfg tool.Config, logger hclog.Logger, opts ...tool.Option) *Analyser {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	opts = append([]tool.Option{tool.WithLogger(logger)}, opts...)

	return &Analyser{
		Extractor:     tool.NewExtractor(cfg, opts...),
		Transcoder:    tool.NewTranscoder(cfg, opts...),
		Logger:        logger,
		ConvertedName: cfg.ConvertedName,
	}
}

// Run analyses the image at path and returns its colours ranked by pixel count.
//
// Only a missing input returns *InputError; anything else that exists is left
// for the tools to accept or reject. If the primary extraction fails with a
// *tool.ToolError the input is transcoded once and extracted again; failure of
// either step returns *FallbackError. Scratch files are removed before Run returns.
func (a *Analyser) Run(ctx context.Context, path string, colours int) (*Result, error) {
	logger := a.logger()

	if err := image.ValidateImagePath(path); err != nil {
		if errors.Is(err, image.ErrNotFound) {
			return nil, &InputError{Path: path, Err: err}
		}
		logger.Debug("input is not a regular file, passing it to the tools", "path", path, "error", err)
	}

	source := path
	if compression.IsCompressed(path) {
		dir, cleanup, err := a.scratch()
		if err != nil {
			return nil, err
		}
		defer cleanup()

		decompressed, _, err := compression.Decompress(path, dir)
		if err != nil {
			// ImageMagick reads some compressed images itself.
			logger.Warn("failed to decompress input, analysing it as is", "path", path, "error", err)
		} else {
			source = decompressed
			logger.Debug("decompressed input", "source", path, "path", source)
		}
	}

	palette, err := a.Extractor.Extract(ctx, source, colours)
	if err == nil {
		return &Result{Source: path, Palette: palette}, nil
	}

	var primary *tool.ToolError
	if !errors.As(err, &primary) {
		return nil, err
	}
	logger.Warn("primary extraction failed, trying transcode fallback", "tool", primary.Tool, "error", primary)

	palette, err = a.fallback(ctx, source, colours, primary)
	if err != nil {
		return nil, err
	}
	return &Result{Source: path, Palette: palette, UsedFallback: true}, nil
}

// fallback transcodes source into a scratch directory and extracts from the frame.
func (a *Analyser) fallback(ctx context.Context, source string, colours int, primary *tool.ToolError) (*colour.Palette, error) {
	dir, cleanup, err := a.scratch()
	if err != nil {
		return nil, &FallbackError{Stage: StageTranscode, Primary: primary, Err: err}
	}
	defer cleanup()

	name := a.ConvertedName
	if name == "" {
		name = tool.DefaultConvertedName
	}
	converted := filepath.Join(dir, name)

	if err := a.Transcoder.Transcode(ctx, source, converted); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &FallbackError{Stage: StageTranscode, Primary: primary, Err: err}
	}

	palette, err := a.Extractor.Extract(ctx, converted, colours)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &FallbackError{Stage: StageRetry, Primary: primary, Err: err}
	}
	return palette, nil
}

// scratch creates a private directory and a func that removes it.
func (a *Analyser) scratch() (string, func(), error) {
	dir, err := os.MkdirTemp(a.TempDir, "swatch-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	logger := a.logger()
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("failed to remove scratch directory", "path", dir, "error", err)
		}
	}, nil
}

func (a *Analyser) logger() hclog.Logger {
	if a.Logger == nil {
		return hclog.NewNullLogger()
	}
	return a.Logger
}
