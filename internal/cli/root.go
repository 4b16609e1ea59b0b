// Package cli provides the command-line interface for swatch.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/version"
)

// NewRootCmd builds the swatch command tree. Each call returns independent
// commands and flag state, so tests can execute it repeatedly.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultExtractOptions())
}

func newRootCmd(opts *extractOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swatch <image>",
		Short: "Print the dominant colours of an image",
		Long: `swatch prints the dominant colours of an image, ranked by pixel count.

The image is resized so its longest side is at most 1200 pixels, quantised with
ImageMagick, and the resulting histogram is parsed into a palette. Inputs
ImageMagick cannot read are transcoded to a still frame with ffmpeg and
analysed again.

Exit status is 0 on success, 1 when the image does not exist, and 2 when both
ImageMagick and the ffmpeg fallback fail.

An image named like a subcommand (extract, version) must be given with a path
prefix, for example ./version.`,
		Example: `  # Eight most frequent colours (default)
  swatch wallpaper.jpg

  # Sixteen colours as JSON
  swatch --colors 16 --format json wallpaper.jpg

  # Colour swatches and nearest colour names in the terminal
  swatch --preview --names wallpaper.png`,
		Version:       version.Short(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	registerExtractFlags(rootCmd.Flags(), opts)
	rootCmd.SetGlobalNormalizationFunc(normaliseFlagName)
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with os.Args and reports any error on stderr.
// The returned error carries the process exit status (see exitcode.Get).
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ReportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// normaliseFlagName accepts British spellings of flag names.
func normaliseFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "colours" {
		name = "colors"
	}
	return pflag.NormalizedName(name)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
