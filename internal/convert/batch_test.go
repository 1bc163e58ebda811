package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convf/convmusic/internal/ffmpeg"
	"github.com/convf/convmusic/internal/logger"
)

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0644))
	return path
}

func newBatchConverter(t *testing.T, out *bytes.Buffer) *BatchConverter {
	t.Helper()
	return &BatchConverter{
		Files: &FileConverter{
			Invoker: &ffmpeg.Invoker{FFmpegPath: fakeFFmpeg(t)},
		},
		Logger:         logger.NewConsoleLogger(out, "info"),
		MaxConcurrency: 2,
	}
}

func TestBatchRun(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	bc := newBatchConverter(t, &out)

	jobs := []Job{
		NewJob(writeInput(t, dir, "one.mp3"), filepath.Join(dir, "one.ogg"), ".ogg", 5),
		NewJob(writeInput(t, dir, "two.wav"), filepath.Join(dir, "two.ogg"), ".ogg", 5),
		NewJob(writeInput(t, dir, "bad.mp3"), filepath.Join(dir, "bad.ogg"), ".ogg", 5),
		NewJob(writeInput(t, dir, "already.ogg"), filepath.Join(dir, "already.ogg"), ".ogg", 5),
	}

	summary, results, err := bc.Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Converted)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)

	// Results stay in job order regardless of completion order
	assert.Equal(t, StatusConverted, results[0].Status)
	assert.Equal(t, StatusConverted, results[1].Status)
	assert.Equal(t, StatusFailed, results[2].Status)
	assert.Equal(t, StatusSkipped, results[3].Status)
	assert.Equal(t, "already in target format", results[3].SkipReason)

	assert.FileExists(t, filepath.Join(dir, "one.ogg"))
	assert.FileExists(t, filepath.Join(dir, "two.ogg"))

	assert.Contains(t, out.String(), "[SUCCESS]")
	assert.Contains(t, out.String(), "[ERROR]")
	assert.Contains(t, out.String(), "Skipping: already.ogg")
}

func TestBatchRunOnResult(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	bc := newBatchConverter(t, &out)

	var seen []Status
	bc.OnResult = func(r Result) {
		seen = append(seen, r.Status)
	}

	jobs := []Job{
		NewJob(writeInput(t, dir, "one.mp3"), filepath.Join(dir, "one.ogg"), ".ogg", 5),
		NewJob(writeInput(t, dir, "bad.mp3"), filepath.Join(dir, "bad.ogg"), ".ogg", 5),
	}

	_, _, err := bc.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestBatchRunEmptyJobs(t *testing.T) {
	var out bytes.Buffer
	bc := newBatchConverter(t, &out)

	summary, results, err := bc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Empty(t, results)
}

func TestBatchRunCancelled(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	bc := newBatchConverter(t, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{
		NewJob(writeInput(t, dir, "one.mp3"), filepath.Join(dir, "one.ogg"), ".ogg", 5),
	}

	_, _, err := bc.Run(ctx, jobs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchProgressCounterCoversAllJobs(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	bc := newBatchConverter(t, &out)

	var jobs []Job
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		input := writeInput(t, dir, name)
		jobs = append(jobs, NewJob(input, swapExt(input, ".ogg"), ".ogg", 5))
	}

	_, _, err := bc.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[3/3] (100%)")
}

func TestBatchRunVerboseRendersProgressBar(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	bc := newBatchConverter(t, &out)
	bc.Logger = logger.NewConsoleLogger(&out, "debug")

	var jobs []Job
	for _, name := range []string{"a.mp3", "b.mp3"} {
		input := writeInput(t, dir, name)
		jobs = append(jobs, NewJob(input, swapExt(input, ".ogg"), ".ogg", 5))
	}

	_, _, err := bc.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "] 2/2 (100%)")
}

func TestSummarySuccessRate(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    int
	}{
		{"all converted", Summary{Total: 4, Converted: 4}, 100},
		{"half converted", Summary{Total: 4, Converted: 2, Failed: 2}, 50},
		{"skips excluded", Summary{Total: 4, Converted: 2, Skipped: 2}, 100},
		{"everything skipped", Summary{Total: 3, Skipped: 3}, 0},
		{"empty", Summary{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.SuccessRate())
		})
	}
}

func TestAlreadyInFormat(t *testing.T) {
	assert.True(t, alreadyInFormat(Job{Input: "a.OGG", Format: ".ogg"}))
	assert.False(t, alreadyInFormat(Job{Input: "a.mp3", Format: ".ogg"}))
	assert.False(t, strings.EqualFold(filepath.Ext("noext"), ".ogg"))
}
