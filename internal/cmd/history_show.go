package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/history"
)

// NewHistoryShowCommand creates the history show command.
func NewHistoryShowCommand() *cobra.Command {
	var (
		limit      int
		failedOnly bool
		batchID    string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent conversions",
		Example: `  convmusic history show
  convmusic history show --limit 50 --failed
  convmusic history show --batch 5c3f2e9a-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			var conversions []history.Conversion
			if batchID != "" {
				conversions, err = store.Batch(cmd.Context(), batchID)
			} else {
				conversions, err = store.Recent(cmd.Context(), limit, failedOnly)
			}
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(conversions) == 0 {
				fmt.Fprintln(out, "No conversions recorded.")
				return nil
			}

			okMark := "ok"
			failMark := "FAIL"
			if !color.NoColor {
				okMark = color.New(color.FgGreen).Sprint(okMark)
				failMark = color.New(color.FgRed).Sprint(failMark)
			}

			fmt.Fprintf(out, "%-20s %-6s %-8s %-10s %s\n", "WHEN", "STATUS", "FORMAT", "DURATION", "FILE")
			fmt.Fprintln(out, strings.Repeat("-", 70))
			for _, conv := range conversions {
				mark := okMark
				if !conv.Success {
					mark = failMark
				}
				fmt.Fprintf(out, "%-20s %-6s %-8s %-10s %s\n",
					conv.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					mark,
					strings.TrimPrefix(conv.TargetFormat, "."),
					conv.Duration.Round(timeRound),
					filepath.Base(conv.InputPath),
				)
				if !conv.Success && conv.ErrorMessage != "" {
					fmt.Fprintf(out, "    %s\n", conv.ErrorMessage)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of conversions to show")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "show failed conversions only")
	cmd.Flags().StringVar(&batchID, "batch", "", "show all conversions from one batch")
	cmd.Flags().String("db-path", "", "path to the history database (overrides config)")

	return cmd
}
