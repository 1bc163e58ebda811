package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/ffmpeg"
)

// NewFormatsCommand creates the formats command listing supported audio
// formats.
func NewFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List commonly supported audio formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Commonly supported audio formats:")
			fmt.Fprintln(out)

			const columns = 5
			for i, format := range ffmpeg.CommonFormats {
				name := strings.TrimPrefix(format, ".")
				fmt.Fprintf(out, "  %-8s", name)
				if (i+1)%columns == 0 {
					fmt.Fprintln(out)
				}
			}
			if len(ffmpeg.CommonFormats)%columns != 0 {
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Actual support depends on your FFmpeg build. Run 'ffmpeg -formats' for the full list.")
			return nil
		},
	}
}
