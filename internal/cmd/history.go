package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rexnie/gentags/internal/history"
	"github.com/rexnie/gentags/internal/logger"
)

// NewHistoryCommand creates the history command and its subcommands
func NewHistoryCommand() *cobra.Command {
	var (
		historyDB string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded gentags runs",
		Long: `Display the run history: when each run happened, what it scanned,
how many files it matched, and whether the tools succeeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(cmd, historyDB, limit)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&historyDB, "history-db", defaultHistoryDB, "run history database path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of runs to show (0 = all)")

	cmd.AddCommand(newHistoryClearCommand(&historyDB))

	return cmd
}

func newHistoryClearCommand(historyDB *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(cmd.OutOrStdout(), "info")
			return clearHistoryDB(*historyDB, log)
		},
		SilenceUsage: true,
	}
}

func showHistory(cmd *cobra.Command, dbPath string, limit int) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "No run history found (database: %s)\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded yet.\n")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %-10s  %5d files  %8s  dirs: %s  types: %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			run.FileCount,
			logger.FormatDuration(run.Duration),
			strings.Join(run.Dirs, ","),
			strings.Join(run.Types, ","),
		)
		if run.Error != "" {
			fmt.Fprintf(out, "    error: %s\n", firstLine(run.Error))
		}
	}

	return nil
}

// firstLine truncates multi-line tool errors for the listing.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
