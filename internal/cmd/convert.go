package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/convert"
	"github.com/convf/convmusic/internal/ffmpeg"
	"github.com/convf/convmusic/internal/logger"
)

// NewConvertCommand creates the convert command for single-file conversion.
func NewConvertCommand() *cobra.Command {
	var (
		output    string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a single audio file",
		Long: `Convert a single audio file to another format using FFmpeg.

The target format is taken from --format, or from the output file's
extension, or from the configured default (ogg). Without --output the
converted file is written next to the input with its extension swapped.`,
		Example: `  convmusic convert song.mp3
  convmusic convert song.mp3 -o song.ogg
  convmusic convert song.mp3 --format flac -q 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], output, overwrite)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().StringP("format", "f", "", "target audio format (mp3, ogg, opus, flac, ...)")
	cmd.Flags().IntP("quality", "q", -1, "VBR quality 0-10 for codecs that support it")
	cmd.Flags().String("timeout", "", "per-file conversion timeout (e.g. 5m)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite the output file if it exists")
	cmd.Flags().Bool("skip-existing", false, "skip the conversion if the output file exists")

	return cmd
}

func runConvert(cmd *cobra.Command, input, output string, overwrite bool) error {
	ctx := cmd.Context()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}
	log := newConsoleLogger(cmd, cfg)

	logger.PrintBanner(cmd.OutOrStdout(), ProgramName, Version, Tagline, log.ColorEnabled())

	inv := newInvoker(cfg)
	if err := probeFFmpeg(ctx, inv, log); err != nil {
		return err
	}

	flagFormat, _ := cmd.Flags().GetString("format")
	outPath, format, err := convert.ResolveOutput(input, output, flagFormat, cfg.DefaultFormat)
	if err != nil {
		return err
	}

	fc := &convert.FileConverter{
		Invoker:      inv,
		SkipExisting: cfg.SkipExisting,
		Overwrite:    overwrite,
	}
	job := convert.NewJob(input, outPath, format, cfg.Quality)

	log.Info("Converting %s -> %s", input, outPath)
	result := fc.Convert(ctx, job)

	if store, err := openHistory(cfg); err != nil {
		log.Warn("history unavailable: %v", err)
	} else if store != nil {
		defer store.Close()
		if result.Status != convert.StatusSkipped {
			if err := recordResult(ctx, store, job.ID, result); err != nil {
				log.Warn("failed to record history: %v", err)
			}
		}
		pruneHistory(ctx, store, cfg, log)
	}

	switch result.Status {
	case convert.StatusConverted:
		log.Success("Converted %s in %s", outPath, result.Duration.Round(timeRound))
		return nil
	case convert.StatusSkipped:
		log.Warn("Skipping %s: %s", input, result.SkipReason)
		return nil
	default:
		var convErr *ffmpeg.ConvertError
		if errors.As(result.Err, &convErr) {
			for _, line := range convErr.StderrTail {
				log.Plain("  %s", line)
			}
		}
		return fmt.Errorf("conversion failed: %w", result.Err)
	}
}
