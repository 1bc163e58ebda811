// Package convert implements the conversion engine: single-file conversion,
// bounded-parallel batch runs, and their result/summary types.
package convert

import (
	"time"

	"github.com/google/uuid"
)

// Status describes the outcome of a single conversion job.
type Status string

const (
	// StatusConverted means FFmpeg produced the output file.
	StatusConverted Status = "converted"
	// StatusSkipped means the job was not run (already in target format,
	// or the output already exists with skip-existing enabled).
	StatusSkipped Status = "skipped"
	// StatusFailed means FFmpeg reported an error.
	StatusFailed Status = "failed"
)

// Job describes one conversion to perform.
type Job struct {
	// ID uniquely identifies the job within a run.
	ID string
	// Input is the source file path.
	Input string
	// Output is the destination file path.
	Output string
	// Format is the dotted target format (".ogg").
	Format string
	// Quality is the 0-10 VBR quality where the codec supports it.
	Quality int
}

// NewJob creates a Job with a fresh id.
func NewJob(input, output, format string, quality int) Job {
	return Job{
		ID:      uuid.NewString(),
		Input:   input,
		Output:  output,
		Format:  format,
		Quality: quality,
	}
}

// Result is the outcome of running a Job.
type Result struct {
	Job      Job
	Status   Status
	Duration time.Duration
	// Err is set for StatusFailed.
	Err error
	// StderrTail holds the last lines of FFmpeg's stderr on failure.
	StderrTail []string
	// SkipReason explains a StatusSkipped result.
	SkipReason string
}

// Summary aggregates the results of a batch run.
type Summary struct {
	Total     int
	Converted int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// add folds a result into the summary counts.
func (s *Summary) add(r Result) {
	s.Total++
	switch r.Status {
	case StatusConverted:
		s.Converted++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// SuccessRate returns the percentage of eligible (non-skipped) jobs that
// converted successfully. Returns 0 when nothing was eligible.
func (s *Summary) SuccessRate() int {
	eligible := s.Total - s.Skipped
	if eligible <= 0 {
		return 0
	}
	return (s.Converted * 100) / eligible
}
