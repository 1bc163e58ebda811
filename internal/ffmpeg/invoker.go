package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNotInstalled is returned by Probe when no ffmpeg binary can be found.
var ErrNotInstalled = errors.New("ffmpeg is not installed or not in the system PATH")

// Invoker is a reusable client for invoking the FFmpeg CLI.
// It follows the http.Client pattern: create once, use many times.
// Thread-safe for concurrent use.
type Invoker struct {
	// FFmpegPath is the path to the ffmpeg binary.
	// Defaults to "ffmpeg" (found in PATH).
	FFmpegPath string

	// Timeout is the default timeout for invocations.
	// Can be overridden per-request via context. Zero means no timeout.
	Timeout time.Duration
}

// Request holds per-invocation configuration for a conversion call.
// Create a new Request for each invocation.
type Request struct {
	// Input is the source file path (required).
	Input string

	// Output is the destination file path (required).
	Output string

	// Format is the target format used to select encoder arguments.
	// Normalized via NormalizeFormat before lookup.
	Format string

	// Quality is the 0-10 VBR quality, applied where the codec supports it.
	// Negative values select DefaultQuality.
	Quality int

	// Overwrite passes -y so FFmpeg replaces an existing output file.
	Overwrite bool
}

// ConvertError carries FFmpeg's exit failure together with the tail of its
// stderr, which is where FFmpeg reports what went wrong.
type ConvertError struct {
	Input      string
	Err        error
	StderrTail []string
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("ffmpeg conversion failed for %s: %v", e.Input, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewInvoker creates a new Invoker with default settings.
func NewInvoker() *Invoker {
	return &Invoker{FFmpegPath: "ffmpeg"}
}

// Probe verifies that FFmpeg is runnable by executing "ffmpeg -version".
// Returns ErrNotInstalled when the binary cannot be found.
func (inv *Invoker) Probe(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, inv.path(), "-version")
	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return ErrNotInstalled
		}
		return fmt.Errorf("probe ffmpeg: %w", err)
	}
	return nil
}

// Convert runs a single FFmpeg conversion described by req.
// The command is built as: ffmpeg -i <input> <encoder args> [-y] <output>.
// On a non-zero exit the returned error is a *ConvertError holding the last
// lines of FFmpeg's stderr.
func (inv *Invoker) Convert(ctx context.Context, req Request) error {
	if req.Input == "" {
		return fmt.Errorf("input is required")
	}
	if req.Output == "" {
		return fmt.Errorf("output is required")
	}

	ctxToUse := ctx
	var cancel context.CancelFunc
	if inv.Timeout > 0 {
		ctxToUse, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	args := []string{"-hide_banner", "-nostdin", "-i", req.Input}
	args = append(args, CodecArgs(req.Format, req.Quality)...)
	if req.Overwrite {
		args = append(args, "-y")
	}
	args = append(args, req.Output)

	cmd := exec.CommandContext(ctxToUse, inv.path(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctxToUse.Err(); ctxErr != nil {
			return ctxErr
		}
		return &ConvertError{
			Input:      req.Input,
			Err:        err,
			StderrTail: tailLines(stderr.String(), 5),
		}
	}
	return nil
}

func (inv *Invoker) path() string {
	if inv.FFmpegPath != "" {
		return inv.FFmpegPath
	}
	return "ffmpeg"
}

// tailLines returns the last n non-empty lines of s.
func tailLines(s string, n int) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
