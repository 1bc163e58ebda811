package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/config"
	"github.com/convf/convmusic/internal/convert"
	"github.com/convf/convmusic/internal/ffmpeg"
	"github.com/convf/convmusic/internal/history"
	"github.com/convf/convmusic/internal/logger"
)

// timeRound is the granularity used when printing durations.
const timeRound = 10 * time.Millisecond

// loadMergedConfig loads configuration (honoring --config), merges any
// conversion flags the calling command defines, and validates the result.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := mergeFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadBaseConfig loads the config file named by --config, or the working
// directory's .convmusic/config.yaml, without any flag overrides.
func loadBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// mergeFlagOverrides folds into cfg any conversion flags the command defines
// and the user actually set.
func mergeFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	var formatPtr *string
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		format, _ := cmd.Flags().GetString("format")
		formatPtr = &format
	}

	var qualityPtr *int
	if f := cmd.Flags().Lookup("quality"); f != nil && f.Changed {
		quality, _ := cmd.Flags().GetInt("quality")
		qualityPtr = &quality
	}

	var concurrencyPtr *int
	if f := cmd.Flags().Lookup("max-concurrency"); f != nil && f.Changed {
		concurrency, _ := cmd.Flags().GetInt("max-concurrency")
		concurrencyPtr = &concurrency
	}

	var timeoutPtr *time.Duration
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		timeoutStr, _ := cmd.Flags().GetString("timeout")
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("invalid timeout format %q: %w", timeoutStr, err)
		}
		timeoutPtr = &timeout
	}

	var skipExistingPtr *bool
	if f := cmd.Flags().Lookup("skip-existing"); f != nil && f.Changed {
		skipExisting, _ := cmd.Flags().GetBool("skip-existing")
		skipExistingPtr = &skipExisting
	}

	cfg.MergeWithFlags(formatPtr, qualityPtr, concurrencyPtr, timeoutPtr, skipExistingPtr)
	return nil
}

// newConsoleLogger builds the command's logger, honoring --verbose.
func newConsoleLogger(cmd *cobra.Command, cfg *config.Config) *logger.ConsoleLogger {
	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}
	return logger.NewConsoleLogger(cmd.OutOrStdout(), logLevel)
}

// newInvoker builds the FFmpeg invoker from configuration.
func newInvoker(cfg *config.Config) *ffmpeg.Invoker {
	inv := ffmpeg.NewInvoker()
	if cfg.FFmpegPath != "" {
		inv.FFmpegPath = cfg.FFmpegPath
	}
	inv.Timeout = cfg.Timeout
	return inv
}

// probeFFmpeg checks that FFmpeg is runnable before any conversion starts.
func probeFFmpeg(ctx context.Context, inv *ffmpeg.Invoker, log *logger.ConsoleLogger) error {
	if err := inv.Probe(ctx); err != nil {
		if errors.Is(err, ffmpeg.ErrNotInstalled) {
			log.Error("FFmpeg is not installed or not in the system PATH.")
			log.Info("Please install FFmpeg to use this converter: https://ffmpeg.org/download.html")
		}
		return err
	}
	return nil
}

// openHistory opens the conversion history store, or returns nil when
// history recording is disabled.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	dbPath, err := config.GetHistoryDBPath(cfg.History.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get history database path: %w", err)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

// historyRecorder returns a convert.BatchConverter OnResult hook that records
// each finished job under batchID. Recording failures are reported as
// warnings; they never fail a conversion.
func historyRecorder(ctx context.Context, store *history.Store, batchID string, log *logger.ConsoleLogger) func(convert.Result) {
	if store == nil {
		return nil
	}
	return func(r convert.Result) {
		if r.Status == convert.StatusSkipped {
			return
		}
		if err := recordResult(ctx, store, batchID, r); err != nil {
			log.Warn("failed to record history: %v", err)
		}
	}
}

// recordResult persists one conversion result.
func recordResult(ctx context.Context, store *history.Store, batchID string, r convert.Result) error {
	conv := &history.Conversion{
		BatchID:      batchID,
		InputPath:    r.Job.Input,
		OutputPath:   r.Job.Output,
		SourceFormat: filepath.Ext(r.Job.Input),
		TargetFormat: r.Job.Format,
		Quality:      r.Job.Quality,
		Success:      r.Status == convert.StatusConverted,
		Duration:     r.Duration,
	}
	if r.Err != nil {
		conv.ErrorMessage = r.Err.Error()
	}
	return store.Record(ctx, conv)
}

// pruneHistory applies the configured retention policy, logging failures as
// debug noise only.
func pruneHistory(ctx context.Context, store *history.Store, cfg *config.Config, log *logger.ConsoleLogger) {
	if store == nil {
		return
	}
	if _, err := store.Prune(ctx, cfg.History.KeepDays); err != nil {
		log.Debug("failed to prune history: %v", err)
	}
}
