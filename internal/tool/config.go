// Package tool runs the external programs swatch delegates to: ImageMagick for
// resizing, quantising and histogram output, and ffmpeg for transcoding inputs
// ImageMagick cannot read.
package tool

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Defaults for tool configuration.
const (
	DefaultMagick        = "magick"
	LegacyMagick         = "convert"
	DefaultFFmpeg        = "ffmpeg"
	DefaultMaxDimension  = 1200
	DefaultConvertedName = "converted.png"
)

// Environment variables read by WithEnv.
const (
	EnvMagick       = "SWATCH_MAGICK"
	EnvFFmpeg       = "SWATCH_FFMPEG"
	EnvMaxDimension = "SWATCH_MAX_DIMENSION"
)

// Config holds the external tool settings.
type Config struct {
	// Magick is the ImageMagick binary. Empty means resolve from PATH.
	Magick string

	// FFmpeg is the ffmpeg binary used for the fallback transcode.
	FFmpeg string

	// MaxDimension bounds the longest side of the analysed image. Images are never enlarged.
	MaxDimension int

	// ConvertedName is the file name of the transcoded still; its extension picks the format.
	ConvertedName string
}

// DefaultConfig returns the default tool configuration.
func DefaultConfig() Config {
	return Config{
		FFmpeg:        DefaultFFmpeg,
		MaxDimension:  DefaultMaxDimension,
		ConvertedName: DefaultConvertedName,
	}
}

// WithEnv returns a copy of c with SWATCH_* environment overrides applied.
func (c Config) WithEnv() (Config, error) {
	if v := os.Getenv(EnvMagick); v != "" {
		c.Magick = v
	}
	if v := os.Getenv(EnvFFmpeg); v != "" {
		c.FFmpeg = v
	}
	if v := os.Getenv(EnvMaxDimension); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s: %w", EnvMaxDimension, err)
		}
		c.MaxDimension = n
	}
	return c, nil
}

// Validate validates the tool configuration.
func (c Config) Validate() error {
	if c.MaxDimension < 1 {
		return fmt.Errorf("max dimension must be at least 1, got %d", c.MaxDimension)
	}
	if c.FFmpeg == "" {
		return fmt.Errorf("ffmpeg path cannot be empty")
	}
	if c.ConvertedName == "" {
		return fmt.Errorf("converted file name cannot be empty")
	}
	return nil
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// ResolveMagick returns the ImageMagick binary to run.
// An explicit Magick setting is used as is. Otherwise "magick" (ImageMagick 7)
// is preferred and "convert" (ImageMagick 6) is used when only it is installed.
// If neither is on PATH, "magick" is returned so the failure surfaces when it runs.
func (c Config) ResolveMagick() string {
	if c.Magick != "" {
		return c.Magick
	}
	if _, err := lookPath(DefaultMagick); err == nil {
		return DefaultMagick
	}
	if _, err := lookPath(LegacyMagick); err == nil {
		return LegacyMagick
	}
	return DefaultMagick
}
