package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rexnie/gentags/internal/config"
	"github.com/rexnie/gentags/internal/scan"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current configuration",
		Long: `Display the effective configuration: defaults merged with the
config file written by the last run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current configuration (%s):\n", configFile)
			fmt.Fprintf(out, "  Directories: %s\n", formatList(cfg.Dirs))
			fmt.Fprintf(out, "  Types:       %s\n", formatList(cfg.Types))
			fmt.Fprintf(out, "  Exclude:     %s\n", formatList(cfg.Exclude))
			fmt.Fprintf(out, "  Depth:       %s\n", formatDepth(cfg.Depth))
			fmt.Fprintf(out, "  Index file:  %s\n", cfg.IndexFile)
			fmt.Fprintf(out, "  Log level:   %s\n", cfg.LogLevel)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configFile, "config-file", "o", config.DefaultConfigFile, "config file path")

	return cmd
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func formatDepth(depth int) string {
	if depth == scan.UnboundedDepth {
		return "unbounded"
	}
	return fmt.Sprintf("%d", depth)
}
