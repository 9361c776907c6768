package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for gentags
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gentags",
		Short: "Generate cscope and ctags databases for code navigation",
		Long: `Gentags discovers source files under the requested directories,
filters them by language and exclusion rules, and drives the external
cscope and ctags binaries to build code navigation databases.

The scan produces a plain-text file index (one absolute path per line)
that both tools consume.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}
