package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "1.0.0"

// ProgramName is the display name used in the banner.
const ProgramName = "ConvMusic"

// Tagline is the one-line description shown under the banner title.
const Tagline = "Universal Audio Format Converter"

// NewRootCommand creates and returns the root cobra command for convmusic
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convmusic",
		Short: "Universal audio format conversion utility",
		Long: `ConvMusic converts audio files between common formats by driving FFmpeg.

It converts single files or whole directories, picks the right encoder and
quality settings per format, and records conversion history.

Configuration is loaded from .convmusic/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Flags shared by every subcommand
	cmd.PersistentFlags().String("config", "", "Path to config file (default: .convmusic/config.yaml)")
	cmd.PersistentFlags().Bool("verbose", false, "Show detailed progress information")

	// Own version flag so -v works as a shorthand
	cmd.Flags().BoolP("version", "v", false, "Show version information")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand())
	cmd.AddCommand(NewBatchCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewFormatsCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
