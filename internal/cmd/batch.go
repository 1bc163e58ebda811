package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/convert"
	"github.com/convf/convmusic/internal/display"
	"github.com/convf/convmusic/internal/ffmpeg"
	"github.com/convf/convmusic/internal/filelock"
	"github.com/convf/convmusic/internal/logger"
	"github.com/convf/convmusic/internal/scan"
)

// batchLockFile guards a directory against concurrent batch runs.
const batchLockFile = ".convmusic.lock"

// NewBatchCommand creates the batch command for converting a directory of
// audio files.
func NewBatchCommand() *cobra.Command {
	var (
		recursive bool
		dryRun    bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Convert every audio file in a directory",
		Long: `Convert every audio file found in a directory to the target format.

Files already in the target format are skipped. Conversions run in
parallel up to the configured concurrency limit, and a failed file
never stops the rest of the batch.`,
		Example: `  convmusic batch ./music --format opus
  convmusic batch ./music -f mp3 -q 2 --recursive
  convmusic batch ./music --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], recursive, dryRun, overwrite)
		},
	}

	cmd.Flags().StringP("format", "f", "", "target audio format (mp3, ogg, opus, flac, ...)")
	cmd.Flags().IntP("quality", "q", -1, "VBR quality 0-10 for codecs that support it")
	cmd.Flags().Int("max-concurrency", 0, "maximum parallel conversions (0 = number of CPUs)")
	cmd.Flags().String("timeout", "", "per-file conversion timeout (e.g. 5m)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be converted without converting")
	cmd.Flags().Bool("skip-existing", false, "skip files whose output already exists")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite output files that exist")

	return cmd
}

func runBatch(cmd *cobra.Command, dir string, recursive, dryRun, overwrite bool) error {
	ctx := cmd.Context()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}
	log := newConsoleLogger(cmd, cfg)

	logger.PrintBanner(cmd.OutOrStdout(), ProgramName, Version, Tagline, log.ColorEnabled())

	files, err := scan.AudioFiles(dir, scan.Options{Recursive: recursive})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %s", dir)
	}

	format := ffmpeg.NormalizeFormat(cfg.DefaultFormat)
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

	// One batch per directory at a time.
	lock := filelock.NewFileLock(filepath.Join(dir, batchLockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("another batch is already running in %s", dir)
	}
	defer lock.Unlock()

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

	log.Info("Converting %d files in %s to %s", len(jobs), dir, format)
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
