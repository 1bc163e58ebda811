package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintBanner writes the stylized program banner.
// Color is applied only when enableColor is true.
func PrintBanner(w io.Writer, name, version, tagline string, enableColor bool) {
	top := "╔══════════════════════════════════════════╗"
	bottom := "╚══════════════════════════════════════════╝"

	title := fmt.Sprintf("%s %s", name, version)

	if enableColor {
		cyan := color.New(color.FgCyan)
		green := color.New(color.FgGreen)
		white := color.New(color.FgWhite)

		cyan.Fprintln(w, top)
		fmt.Fprintf(w, "%s %s%s\n", cyan.Sprint("║"), green.Sprint(padBanner(title)), cyan.Sprint("║"))
		fmt.Fprintf(w, "%s %s%s\n", cyan.Sprint("║"), white.Sprint(padBanner(tagline)), cyan.Sprint("║"))
		cyan.Fprintln(w, bottom)
		return
	}

	fmt.Fprintln(w, top)
	fmt.Fprintf(w, "║ %s║\n", padBanner(title))
	fmt.Fprintf(w, "║ %s║\n", padBanner(tagline))
	fmt.Fprintln(w, bottom)
}

// padBanner pads s to the banner's inner width.
func padBanner(s string) string {
	const inner = 41
	runes := []rune(s)
	if len(runes) >= inner {
		return string(runes[:inner])
	}
	return fmt.Sprintf("%-*s", inner, s)
}
