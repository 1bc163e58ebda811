package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convf/convmusic/internal/config"
	"github.com/convf/convmusic/internal/history"
)

// NewHistoryCommand creates the history command group for inspecting past
// conversions.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the conversion history",
		Long: `Inspect the conversion history recorded by convert, batch, and run.

History is stored in a local SQLite database under the convmusic home
directory (CONVMUSIC_HOME or ~/.convmusic).`,
	}

	cmd.AddCommand(NewHistoryShowCommand())
	cmd.AddCommand(NewHistoryStatsCommand())
	cmd.AddCommand(NewHistoryClearCommand())
	cmd.AddCommand(NewHistoryExportCommand())

	return cmd
}

// openHistoryStore opens the history database named by --db-path, falling
// back to the configured location.
func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db-path")
	if dbPath == "" {
		cfg, err := loadMergedConfig(cmd)
		if err != nil {
			return nil, err
		}
		dbPath, err = config.GetHistoryDBPath(cfg.History.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get history database path: %w", err)
		}
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}
