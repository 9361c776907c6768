package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rexnie/gentags/internal/config"
	"github.com/rexnie/gentags/internal/history"
	"github.com/rexnie/gentags/internal/logger"
)

// NewCleanCommand creates the clean command
func NewCleanCommand() *cobra.Command {
	var (
		indexFile    string
		configFile   string
		historyDB    string
		clearHistory bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove all generated files",
		Long: `Remove the files a gentags run leaves behind: the file index, the
config file, the command record, the run lock, and the cscope/ctags
databases. With --history the run history database is cleared as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(cmd.OutOrStdout(), "info")

			targets := []string{
				indexFile,
				configFile,
				config.DefaultCmdFile,
				config.DefaultLockFile,
				"cscope.out",
				"cscope.in.out",
				"cscope.po.out",
				"tags",
			}

			log.Infof("Cleaning generated files...")
			for _, target := range targets {
				if _, err := os.Stat(target); os.IsNotExist(err) {
					continue
				}
				if err := os.Remove(target); err != nil {
					return fmt.Errorf("failed to remove %s: %w", target, err)
				}
				log.Infof("Removed: %s", target)
			}

			if clearHistory {
				if err := clearHistoryDB(historyDB, log); err != nil {
					return err
				}
			}

			log.Infof("Clean completed.")
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&indexFile, "index-file", "f", config.DefaultIndexFile, "file index path")
	cmd.Flags().StringVarP(&configFile, "config-file", "o", config.DefaultConfigFile, "config file path")
	cmd.Flags().StringVar(&historyDB, "history-db", defaultHistoryDB, "run history database path")
	cmd.Flags().BoolVar(&clearHistory, "history", false, "also clear the run history database")

	return cmd
}

func clearHistoryDB(dbPath string, log *logger.ConsoleLogger) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	removed, err := store.Clear()
	if err != nil {
		return err
	}
	log.Infof("Cleared %d recorded runs", removed)
	return nil
}
