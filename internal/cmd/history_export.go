package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/filelock"
	"github.com/convf/convmusic/internal/history"
)

// exportedConversion is the JSON shape of one history row.
type exportedConversion struct {
	ID           int64     `json:"id"`
	BatchID      string    `json:"batch_id,omitempty"`
	InputPath    string    `json:"input_path"`
	OutputPath   string    `json:"output_path"`
	SourceFormat string    `json:"source_format"`
	TargetFormat string    `json:"target_format"`
	Quality      int       `json:"quality"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewHistoryExportCommand creates the history export command.
func NewHistoryExportCommand() *cobra.Command {
	var (
		format     string
		outputPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export conversion history as JSON or CSV",
		Example: `  convmusic history export
  convmusic history export history.json
  convmusic history export --format csv --output history.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if outputPath != "" {
					return fmt.Errorf("output file given both as argument and via --output")
				}
				outputPath = args[0]
			}

			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			conversions, err := store.Recent(cmd.Context(), limit, false)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}

			var data []byte
			switch format {
			case "json":
				data, err = exportJSON(conversions)
			case "csv":
				data, err = exportCSV(conversions)
			default:
				return fmt.Errorf("unsupported export format %q (want json or csv)", format)
			}
			if err != nil {
				return err
			}

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := filelock.LockAndWrite(outputPath, data); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversions to %s\n", len(conversions), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json or csv)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "maximum number of conversions to export")
	cmd.Flags().String("db-path", "", "path to the history database (overrides config)")

	return cmd
}

func exportJSON(conversions []history.Conversion) ([]byte, error) {
	exported := make([]exportedConversion, 0, len(conversions))
	for _, conv := range conversions {
		exported = append(exported, exportedConversion{
			ID:           conv.ID,
			BatchID:      conv.BatchID,
			InputPath:    conv.InputPath,
			OutputPath:   conv.OutputPath,
			SourceFormat: conv.SourceFormat,
			TargetFormat: conv.TargetFormat,
			Quality:      conv.Quality,
			Success:      conv.Success,
			ErrorMessage: conv.ErrorMessage,
			DurationMS:   conv.Duration.Milliseconds(),
			CreatedAt:    conv.CreatedAt,
		})
	}
	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return append(data, '\n'), nil
}

func exportCSV(conversions []history.Conversion) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "batch_id", "input_path", "output_path", "source_format",
		"target_format", "quality", "success", "error_message", "duration_ms", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, conv := range conversions {
		row := []string{
			strconv.FormatInt(conv.ID, 10),
			conv.BatchID,
			conv.InputPath,
			conv.OutputPath,
			conv.SourceFormat,
			conv.TargetFormat,
			strconv.Itoa(conv.Quality),
			strconv.FormatBool(conv.Success),
			conv.ErrorMessage,
			strconv.FormatInt(conv.Duration.Milliseconds(), 10),
			conv.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
