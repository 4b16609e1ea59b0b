package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/analyse"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/tool"
)

// DefaultColours is the number of colours requested when --colors is not given.
const DefaultColours = 8

// extractOptions holds the flags shared by the root and extract commands.
type extractOptions struct {
	colours   int
	format    string
	output    string
	preview   bool
	names     bool
	magick    string
	ffmpeg    string
	maxSize   int
	toolOpts  []tool.Option // injected by tests
	scratchAt string        // injected by tests
}

func defaultExtractOptions() *extractOptions {
	return &extractOptions{
		colours: DefaultColours,
		format:  formatText,
		maxSize: tool.DefaultMaxDimension,
		ffmpeg:  tool.DefaultFFmpeg,
	}
}

func newExtractCmd(opts *extractOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant colours of an image",
		Long: `Extract the dominant colours of an image, most frequent first.

Any format ImageMagick reads is supported directly. Anything else ffmpeg can
decode (video, HEIC without a delegate, camera raw) is handled through a
single transcoded still frame. Files ending in .xz, .gz or .bz2 are
decompressed first.

Environment:
  SWATCH_MAGICK         ImageMagick binary (default: magick, then convert)
  SWATCH_FFMPEG         ffmpeg binary (default: ffmpeg)
  SWATCH_MAX_DIMENSION  longest side analysed in pixels (default: 1200)`,
		Example: `  swatch extract wallpaper.jpg
  swatch extract -c 5 -f table clip.mp4
  swatch extract -o palette.yaml -f yaml scan.tiff.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	registerExtractFlags(cmd.Flags(), opts)
	return cmd
}

func registerExtractFlags(flags *pflag.FlagSet, opts *extractOptions) {
	flags.IntVarP(&opts.colours, "colors", "c", DefaultColours, "number of colours to extract")
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format (text, json, yaml, table)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches when writing to a terminal")
	flags.BoolVar(&opts.names, "names", false, "show the nearest named colour for each entry")
	flags.StringVar(&opts.magick, "magick", "", "ImageMagick binary (default: $SWATCH_MAGICK, magick or convert)")
	flags.StringVar(&opts.ffmpeg, "ffmpeg", tool.DefaultFFmpeg, "ffmpeg binary used for the fallback (default: $SWATCH_FFMPEG or ffmpeg)")
	flags.IntVar(&opts.maxSize, "max-size", tool.DefaultMaxDimension, "longest side in pixels analysed; images are never enlarged")
}

// toolConfig layers command line flags over the environment and defaults.
func toolConfig(cmd *cobra.Command, opts *extractOptions) (tool.Config, error) {
	cfg, err := tool.DefaultConfig().WithEnv()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("magick") {
		cfg.Magick = opts.magick
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpeg = opts.ffmpeg
	}
	if flags.Changed("max-size") {
		cfg.MaxDimension = opts.maxSize
	}

	return cfg, cfg.Validate()
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string, opts *extractOptions) error {
	imagePath := args[0]

	if err := validateFormat(opts.format); err != nil {
		return err
	}
	if opts.colours < 1 {
		return fmt.Errorf("invalid colour count: %d (must be at least 1)", opts.colours)
	}

	cfg, err := toolConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	logger := newLogger(cmd.ErrOrStderr(), verbose, quiet)

	analyser := analyse.New(cfg, logger, opts.toolOpts...)
	analyser.TempDir = opts.scratchAt

	logger.Debug("extracting palette", "image", imagePath, "colours", opts.colours, "max_size", cfg.MaxDimension)

	result, err := analyser.Run(cmd.Context(), imagePath, opts.colours)
	if err != nil {
		return err
	}

	logger.Debug("palette extracted", "entries", result.Palette.Len(), "fallback", result.UsedFallback)

	ro := renderOptions{
		format: opts.format,
		names:  opts.names,
	}

	if opts.output != "" {
		out, err := render(result, ro)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, out, 0o644); err != nil { // #nosec G306 - palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "path", opts.output)
		return nil
	}

	tty := colour.SupportsANSIColours(cmd.OutOrStdout())
	ro.preview = opts.preview && tty
	ro.colour = tty
	out, err := render(result, ro)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
