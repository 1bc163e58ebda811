package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "debug")

	cl.Debug("checking %s", "ffmpeg")
	cl.Info("converting file")
	cl.Warn("no files found")
	cl.Error("conversion failed")
	cl.Success("done")

	out := buf.String()
	wantLines := []string{
		"[DEBUG] checking ffmpeg",
		"[INFO] converting file",
		"[WARN] no files found",
		"[ERROR] conversion failed",
		"[SUCCESS] done",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
		wantError bool
	}{
		{"debug shows everything", "debug", true, true, true, true},
		{"info hides debug", "info", false, true, true, true},
		{"warn hides info", "warn", false, false, true, true},
		{"error hides warn", "error", false, false, false, true},
		{"invalid level defaults to info", "bogus", false, true, true, true},
		{"empty level defaults to info", "", false, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.level)

			cl.Debug("d")
			cl.Info("i")
			cl.Warn("w")
			cl.Error("e")

			out := buf.String()
			checks := []struct {
				tag  string
				want bool
			}{
				{"[DEBUG]", tt.wantDebug},
				{"[INFO]", tt.wantInfo},
				{"[WARN]", tt.wantWarn},
				{"[ERROR]", tt.wantError},
			}
			for _, c := range checks {
				if got := strings.Contains(out, c.tag); got != c.want {
					t.Errorf("level %q: contains %s = %v, want %v", tt.level, c.tag, got, c.want)
				}
			}
		})
	}
}

func TestConsoleLoggerSuccessRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.Success("should be hidden")
	if buf.Len() != 0 {
		t.Errorf("Success at warn level should be filtered, got %q", buf.String())
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")
	// Must not panic.
	cl.Info("discarded")
	cl.Plain("discarded")
}

func TestConsoleLoggerPlain(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.Plain("Total files:    %d", 3)
	if got := buf.String(); got != "Total files:    3\n" {
		t.Errorf("Plain() = %q", got)
	}
}

func TestConsoleLoggerNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	if cl.ColorEnabled() {
		t.Error("color should be disabled for non-terminal writers")
	}
	cl.Info("plain")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("buffer output should have no ANSI codes, got %q", buf.String())
	}
}
