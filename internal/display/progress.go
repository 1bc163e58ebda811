package display

import (
	"fmt"
	"io"
	"path/filepath"
)

// ProgressIndicator lists the files selected for a batch run with ANSI colors.
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int
	current    int
	color      bool
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int, enableColor bool) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		totalFiles: total,
		color:      enableColor,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Files to convert:\n")
}

// Step displays progress for current item: [N/Total] filename (cyan)
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	basename := filepath.Base(filename)
	if p.color {
		fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.totalFiles, basename)
	} else {
		fmt.Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.totalFiles, basename)
	}
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete() {
	if p.color {
		fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Selected %d files\n", p.totalFiles)
	} else {
		fmt.Fprintf(p.writer, "✓ Selected %d files\n", p.totalFiles)
	}
}
