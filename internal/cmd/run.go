package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/convert"
	"github.com/convf/convmusic/internal/display"
	"github.com/convf/convmusic/internal/ffmpeg"
	"github.com/convf/convmusic/internal/logger"
	"github.com/convf/convmusic/internal/manifest"
)

// NewRunCommand creates the run command, which converts the files listed in
// a manifest.
func NewRunCommand() *cobra.Command {
	var (
		dryRun    bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Convert the files listed in a manifest",
		Long: `Convert the audio files listed in a Markdown or YAML manifest.

Markdown manifests list files as bullet items, with an optional YAML
frontmatter block setting the format and quality. Values on the command
line override the manifest, which overrides the configuration file.`,
		Example: `  convmusic run album.md
  convmusic run album.yaml --format opus
  convmusic run album.md --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(cmd, args[0], dryRun, overwrite)
		},
	}

	cmd.Flags().StringP("format", "f", "", "target audio format (overrides the manifest)")
	cmd.Flags().IntP("quality", "q", -1, "VBR quality 0-10 (overrides the manifest)")
	cmd.Flags().Int("max-concurrency", 0, "maximum parallel conversions (0 = number of CPUs)")
	cmd.Flags().String("timeout", "", "per-file conversion timeout (e.g. 5m)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be converted without converting")
	cmd.Flags().Bool("skip-existing", false, "skip files whose output already exists")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite output files that exist")

	return cmd
}

func runManifest(cmd *cobra.Command, manifestPath string, dryRun, overwrite bool) error {
	ctx := cmd.Context()

	man, err := manifest.ParseFile(manifestPath)
	if err != nil {
		return err
	}

	// Precedence: flags, then manifest, then config file.
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}
	var manFormat *string
	if man.Format != "" {
		manFormat = &man.Format
	}
	cfg.MergeWithFlags(manFormat, man.Quality, nil, nil, nil)
	if err := mergeFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newConsoleLogger(cmd, cfg)
	logger.PrintBanner(cmd.OutOrStdout(), ProgramName, Version, Tagline, log.ColorEnabled())

	format := ffmpeg.NormalizeFormat(cfg.DefaultFormat)
	files := man.ResolvedFiles()
	jobs := make([]convert.Job, 0, len(files))
	for _, f := range files {
		output := f[:len(f)-len(filepath.Ext(f))] + format
		jobs = append(jobs, convert.NewJob(f, output, format, cfg.Quality))
	}

	if dryRun {
		ind := display.NewProgressIndicator(cmd.OutOrStdout(), len(jobs), log.ColorEnabled())
		ind.Start()
		for _, job := range jobs {
			ind.Step(filepath.Base(job.Input))
		}
		ind.Complete()
		log.Info("Dry run: no files were converted.")
		return nil
	}

	inv := newInvoker(cfg)
	if err := probeFFmpeg(ctx, inv, log); err != nil {
		return err
	}

	batchID := uuid.NewString()
	store, err := openHistory(cfg)
	if err != nil {
		log.Warn("history unavailable: %v", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	bc := &convert.BatchConverter{
		Files: &convert.FileConverter{
			Invoker:      inv,
			SkipExisting: cfg.SkipExisting,
			Overwrite:    overwrite,
		},
		Logger:         log,
		MaxConcurrency: cfg.MaxConcurrency,
		OnResult:       historyRecorder(ctx, store, batchID, log),
	}

	log.Info("Converting %d files from %s to %s", len(jobs), manifestPath, format)
	summary, _, err := bc.Run(ctx, jobs)
	if err != nil {
		return err
	}

	pruneHistory(ctx, store, cfg, log)
	display.RenderSummary(cmd.OutOrStdout(), summary, log.ColorEnabled())

	if summary.Converted == 0 {
		return fmt.Errorf("no files were converted (%d skipped, %d failed)", summary.Skipped, summary.Failed)
	}
	return nil
}
