package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Transcoder extracts a single still frame with ffmpeg.
type Transcoder struct {
	ffmpeg string
	runner ProcessRunner
	logger hclog.Logger
}

// NewTranscoder creates a Transcoder from cfg.
func NewTranscoder(cfg Config, opts ...Option) *Transcoder {
	o := newOptions(opts)
	ffmpeg := cfg.FFmpeg
	if ffmpeg == "" {
		ffmpeg = DefaultFFmpeg
	}
	return &Transcoder{
		ffmpeg: ffmpeg,
		runner: o.runner,
		logger: o.logger,
	}
}

// Args returns the ffmpeg arguments used to write the first frame of input to dest.
func (t *Transcoder) Args(input, dest string) []string {
	return []string{
		"-hide_banner",
		"-y",
		"-i", safeInputPath(input),
		"-frames:v", "1",
		dest,
	}
}

// Transcode writes the first video frame (or the only frame of a still) of
// input to dest, in the format implied by dest's extension.
func (t *Transcoder) Transcode(ctx context.Context, input, dest string) error {
	args := t.Args(input, dest)
	t.logger.Debug("running transcode", "tool", t.ffmpeg, "args", args)

	start := time.Now()
	stdout, stderr, err := t.runner.Run(ctx, t.ffmpeg, args, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("transcode interrupted: %w", ctxErr)
		}
		toolErr := newToolError(t.ffmpeg, args, stdout, stderr, err)
		t.logger.Debug("transcode failed", "tool", t.ffmpeg, "exit_code", toolErr.ExitCode, "duration", time.Since(start))
		return toolErr
	}

	t.logger.Debug("transcode complete", "dest", dest, "duration", time.Since(start))
	return nil
}
