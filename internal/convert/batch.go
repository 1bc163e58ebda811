package convert

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/convf/convmusic/internal/logger"
)

// BatchConverter runs a set of jobs with bounded parallelism.
type BatchConverter struct {
	// Files performs the individual conversions. Required.
	Files *FileConverter
	// Logger receives per-file progress. Required (use NoOpLogger to silence).
	Logger Logger
	// MaxConcurrency caps parallel conversions (0 = number of CPUs).
	MaxConcurrency int
	// OnResult, when set, is called once per finished job. Calls are
	// serialized. Used to record history as results arrive.
	OnResult func(Result)
}

// Run executes all jobs and returns the summary plus the per-job results in
// job order. Jobs whose input is already in the target format are skipped
// without invoking FFmpeg. A failed job never stops the rest of the batch;
// only context cancellation does.
func (bc *BatchConverter) Run(ctx context.Context, jobs []Job) (*Summary, []Result, error) {
	start := time.Now()

	limit := bc.MaxConcurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	total := len(jobs)

	enableColor := false
	if c, ok := bc.Logger.(interface{ ColorEnabled() bool }); ok {
		enableColor = c.ColorEnabled()
	}
	bar := logger.NewProgressBar(total, 20, enableColor)

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var result Result
			if alreadyInFormat(job) {
				result = Result{
					Job:        job,
					Status:     StatusSkipped,
					SkipReason: "already in target format",
				}
			} else {
				result = bc.Files.Convert(gctx, job)
			}

			mu.Lock()
			done, percent := bar.Step()
			bc.logResult(result, done, total, percent)
			bc.Logger.Debug("%s", bar.Render())
			if bc.OnResult != nil {
				bc.OnResult(result)
			}
			mu.Unlock()

			results[i] = result

			// Cancellation is the only error that stops the batch
			if result.Err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}

	err := g.Wait()

	summary := &Summary{}
	for _, result := range results {
		if result.Status != "" {
			summary.add(result)
		}
	}
	summary.Duration = time.Since(start)

	return summary, results, err
}

// logResult writes the per-file progress line for a finished job.
func (bc *BatchConverter) logResult(result Result, done, total, percent int) {
	name := filepath.Base(result.Job.Input)

	switch result.Status {
	case StatusConverted:
		bc.Logger.Success("[%d/%d] (%d%%) Converted: %s → %s",
			done, total, percent, name, filepath.Base(result.Job.Output))
	case StatusSkipped:
		bc.Logger.Info("[%d/%d] (%d%%) Skipping: %s (%s)",
			done, total, percent, name, result.SkipReason)
	case StatusFailed:
		bc.Logger.Error("[%d/%d] (%d%%) Failed: %s", done, total, percent, name)
		for _, line := range result.StderrTail {
			bc.Logger.Warn("  %s", line)
		}
	}
}

// alreadyInFormat reports whether the job's input already carries the
// target extension.
func alreadyInFormat(job Job) bool {
	return strings.EqualFold(filepath.Ext(job.Input), job.Format)
}
