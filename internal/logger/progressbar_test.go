package logger

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name  string
		total int
		steps int
		want  string
	}{
		{"empty bar", 10, 0, "[          ] 0/10 (0%)"},
		{"half full", 10, 5, "[=====     ] 5/10 (50%)"},
		{"complete", 10, 10, "[==========] 10/10 (100%)"},
		{"zero total", 0, 0, "[          ] 0/0 (0%)"},
		{"overflow clamps to 100", 10, 15, "[==========] 15/10 (100%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, 10, false)
			for i := 0; i < tt.steps; i++ {
				pb.Step()
			}
			if got := pb.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgressBarStep(t *testing.T) {
	pb := NewProgressBar(4, 10, false)
	pb.Step()
	done, percent := pb.Step()

	if done != 2 || percent != 50 {
		t.Errorf("Step() = (%d, %d), want (2, 50)", done, percent)
	}
	if pb.Done() != 2 {
		t.Errorf("Done() = %d, want 2", pb.Done())
	}
	if pb.Total() != 4 {
		t.Errorf("Total() = %d, want 4", pb.Total())
	}
	if pb.Percentage() != 50 {
		t.Errorf("Percentage() = %d, want 50", pb.Percentage())
	}
}

func TestProgressBarColor(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	pb := NewProgressBar(2, 10, true)
	pb.Step()
	if out := pb.Render(); !strings.Contains(out, "\x1b[36m") {
		t.Errorf("in-progress bar should be cyan, got %q", out)
	}

	pb.Step()
	if out := pb.Render(); !strings.Contains(out, "\x1b[32m") {
		t.Errorf("complete bar should be green, got %q", out)
	}
}

func TestProgressBarMinWidth(t *testing.T) {
	pb := NewProgressBar(1, 0, false)
	pb.Step()
	if got := pb.Render(); !strings.Contains(got, "[==========]") {
		t.Errorf("zero width should fall back to the minimum, got %q", got)
	}
}
