package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ProgressBar tracks how many files of a batch run have finished and renders
// the overall completion as an ASCII bar.
type ProgressBar struct {
	mu    sync.Mutex
	done  int
	total int
	width int
	color bool
}

// NewProgressBar creates a bar for a batch of total files. width is the
// number of fill characters (minimum 10).
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 10 {
		width = 10
	}
	return &ProgressBar{total: total, width: width, color: enableColor}
}

// Step marks one more file as finished and returns the new count and the
// completion percentage.
func (pb *ProgressBar) Step() (done, percent int) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.done++
	return pb.done, pb.percent()
}

// Done returns how many files have finished so far.
func (pb *ProgressBar) Done() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.done
}

// Total returns the number of files in the batch.
func (pb *ProgressBar) Total() int {
	return pb.total
}

// Percentage returns the completion percentage (0-100).
func (pb *ProgressBar) Percentage() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.percent()
}

func (pb *ProgressBar) percent() int {
	if pb.total <= 0 {
		return 0
	}
	p := (pb.done * 100) / pb.total
	if p > 100 {
		p = 100
	}
	return p
}

// Render returns the bar, e.g. "[=====     ] 5/10 (50%)". In-progress bars
// are cyan, finished ones green.
func (pb *ProgressBar) Render() string {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	percent := pb.percent()
	filled := (percent * pb.width) / 100
	bar := fmt.Sprintf("[%s%s] %d/%d (%d%%)",
		strings.Repeat("=", filled), strings.Repeat(" ", pb.width-filled),
		pb.done, pb.total, percent)

	if !pb.color {
		return bar
	}
	if percent == 100 {
		return color.New(color.FgGreen).Sprint(bar)
	}
	return color.New(color.FgCyan).Sprint(bar)
}
