package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/convf/convmusic/internal/ffmpeg"
)

// Logger is the console surface the engine reports through.
// *logger.ConsoleLogger and *logger.NoOpLogger satisfy it.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Success(format string, args ...interface{})
}

// FileConverter converts single files through an ffmpeg.Invoker.
type FileConverter struct {
	// Invoker runs FFmpeg. Required.
	Invoker *ffmpeg.Invoker
	// SkipExisting skips jobs whose output file already exists.
	SkipExisting bool
	// Overwrite passes -y to FFmpeg so existing outputs are replaced.
	// Ignored when SkipExisting is set.
	Overwrite bool
}

// ResolveOutput determines the output path and target format for a single
// conversion. Resolution order for the format: the explicit format flag,
// then the output file's extension, then the configured default.
// The output path defaults to the input path with its extension swapped.
func ResolveOutput(input, output, format, defaultFormat string) (string, string, error) {
	var targetFormat string

	switch {
	case format != "":
		targetFormat = ffmpeg.NormalizeFormat(format)
	case output != "" && filepath.Ext(output) != "":
		targetFormat = strings.ToLower(filepath.Ext(output))
	default:
		targetFormat = ffmpeg.NormalizeFormat(defaultFormat)
	}
	if targetFormat == "" {
		return "", "", fmt.Errorf("no target format specified")
	}

	if output == "" {
		output = swapExt(input, targetFormat)
	} else if filepath.Ext(output) == "" {
		// -o name without an extension gets the target format appended
		output += targetFormat
	}

	return output, targetFormat, nil
}

// swapExt replaces path's extension with ext (dotted).
func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Convert runs one job and returns its result. The input file is checked
// before FFmpeg is invoked so a missing file fails fast with a clear error.
func (fc *FileConverter) Convert(ctx context.Context, job Job) Result {
	result := Result{Job: job}

	if _, err := os.Stat(job.Input); err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("the file %q does not exist", job.Input)
		return result
	}

	if fc.SkipExisting {
		if _, err := os.Stat(job.Output); err == nil {
			result.Status = StatusSkipped
			result.SkipReason = "output file already exists"
			return result
		}
	}

	start := time.Now()
	err := fc.Invoker.Convert(ctx, ffmpeg.Request{
		Input:     job.Input,
		Output:    job.Output,
		Format:    job.Format,
		Quality:   job.Quality,
		Overwrite: fc.Overwrite,
	})
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusFailed
		result.Err = err

		var convErr *ffmpeg.ConvertError
		if errors.As(err, &convErr) {
			result.StderrTail = convErr.StderrTail
		}
		return result
	}

	result.Status = StatusConverted
	return result
}
