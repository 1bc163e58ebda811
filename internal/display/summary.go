// Package display renders the batch progress listing and the conversion
// summary box.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/convf/convmusic/internal/convert"
)

const boxWidth = 42 // inner width of the summary box

// RenderSummary writes the conversion summary box for a batch run.
func RenderSummary(w io.Writer, s *convert.Summary, enableColor bool) {
	frame := func(s string) string { return s }
	label := func(s string) string { return s }
	good := func(s string) string { return s }
	warn := func(s string) string { return s }
	bad := func(s string) string { return s }
	if enableColor {
		sprint := func(c *color.Color) func(string) string {
			return func(s string) string { return c.Sprint(s) }
		}
		frame = sprint(color.New(color.FgCyan))
		label = sprint(color.New(color.FgWhite))
		good = sprint(color.New(color.FgGreen))
		warn = sprint(color.New(color.FgYellow))
		bad = sprint(color.New(color.FgRed))
	}

	row := func(name string, value string, paint func(string) string) {
		content := fmt.Sprintf("%-16s%s", name, value)
		padded := fmt.Sprintf("%-*s", boxWidth-1, content)
		fmt.Fprintf(w, "%s %s%s\n",
			frame("║"),
			label(padded[:16])+paint(padded[16:]),
			frame("║"))
	}

	fmt.Fprintln(w, frame("╔"+hline()+"╗"))
	fmt.Fprintf(w, "%s %s%s\n", frame("║"),
		label(fmt.Sprintf("%-*s", boxWidth-1, "Conversion Summary")), frame("║"))
	fmt.Fprintln(w, frame("╠"+hline()+"╣"))

	row("Total files:", fmt.Sprintf("%d", s.Total), label)
	row("Converted:", fmt.Sprintf("%d", s.Converted), good)
	row("Skipped:", fmt.Sprintf("%d", s.Skipped), warn)
	row("Failed:", fmt.Sprintf("%d", s.Failed), bad)
	rate := good
	if s.Failed > 0 {
		rate = warn
	}
	row("Success rate:", fmt.Sprintf("%d%%", s.SuccessRate()), rate)

	fmt.Fprintln(w, frame("╚"+hline()+"╝"))
}

func hline() string {
	return strings.Repeat("═", boxWidth)
}
