package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewHistoryStatsCommand creates the history stats command.
func NewHistoryStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate conversion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if stats.TotalConversions == 0 {
				fmt.Fprintln(out, "No conversions recorded.")
				return nil
			}

			rate := fmt.Sprintf("%.1f%%", stats.SuccessRate)
			if !color.NoColor {
				switch {
				case stats.SuccessRate >= 70:
					rate = color.New(color.FgGreen).Sprint(rate)
				case stats.SuccessRate >= 40:
					rate = color.New(color.FgYellow).Sprint(rate)
				default:
					rate = color.New(color.FgRed).Sprint(rate)
				}
			}

			fmt.Fprintln(out, "Conversion statistics:")
			fmt.Fprintf(out, "  Total:        %d\n", stats.TotalConversions)
			fmt.Fprintf(out, "  Succeeded:    %d\n", stats.Succeeded)
			fmt.Fprintf(out, "  Failed:       %d\n", stats.Failed)
			fmt.Fprintf(out, "  Success rate: %s\n", rate)
			fmt.Fprintf(out, "  Avg duration: %s\n", stats.AvgDuration.Round(timeRound))

			if len(stats.PerFormat) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Successful conversions by format:")
				formats := make([]string, 0, len(stats.PerFormat))
				for f := range stats.PerFormat {
					formats = append(formats, f)
				}
				sort.Strings(formats)
				for _, f := range formats {
					fmt.Fprintf(out, "  %-8s %d\n", strings.TrimPrefix(f, "."), stats.PerFormat[f])
				}
			}
			return nil
		},
	}

	cmd.Flags().String("db-path", "", "path to the history database (overrides config)")

	return cmd
}
