package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintBannerPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "ConvMusic", "1.0.0", "Universal Audio Format Converter", false)

	out := buf.String()
	if !strings.Contains(out, "ConvMusic 1.0.0") {
		t.Errorf("banner missing title, got:\n%s", out)
	}
	if !strings.Contains(out, "Universal Audio Format Converter") {
		t.Errorf("banner missing tagline, got:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("plain banner should have no ANSI codes")
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) != 4 {
		t.Errorf("banner should be 4 lines, got:\n%s", out)
	}
}

func TestPrintBannerColor(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "ConvMusic", "1.0.0", "Universal Audio Format Converter", true)

	if !strings.Contains(buf.String(), "ConvMusic 1.0.0") {
		t.Errorf("colored banner missing title, got:\n%s", buf.String())
	}
}

func TestPadBanner(t *testing.T) {
	if got := padBanner("ab"); len([]rune(got)) != 41 {
		t.Errorf("padBanner short string length = %d, want 41", len([]rune(got)))
	}
	long := strings.Repeat("x", 60)
	if got := padBanner(long); len([]rune(got)) != 41 {
		t.Errorf("padBanner long string length = %d, want 41", len([]rune(got)))
	}
}
