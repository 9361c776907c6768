package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rexnie/gentags/internal/config"
	"github.com/rexnie/gentags/internal/filelock"
	"github.com/rexnie/gentags/internal/indexer"
	"github.com/rexnie/gentags/internal/logger"
	"github.com/rexnie/gentags/internal/watcher"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the databases whenever the tree changes",
		Long: `Run the full scan-and-index pipeline once, then keep watching the
scanned directories and rebuild from scratch after each settled burst
of filesystem changes. Stop with Ctrl-C.

Every rebuild is a complete pass; nothing is indexed incrementally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return executeWatch(cmd.Context(), cfg, opts, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	addScanFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.indexOnly, "index-only", "i", false, "only regenerate the file index, skip cscope and ctags")

	return cmd
}

func executeWatch(ctx context.Context, cfg *config.Config, opts *runOptions, errOut io.Writer) error {
	log := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)

	// Hold the run lock for the whole watch session so a concurrent
	// `gentags run` cannot race the rebuilds.
	lock := filelock.NewRunLock(config.DefaultLockFile)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &pipeline{
		cfg:        cfg,
		configFile: opts.configFile,
		indexOnly:  opts.indexOnly,
		runner:     indexer.NewExecRunner(""),
		log:        log,
		warnOut:    errOut,
		historyDB:  opts.historyDB,
		argv:       os.Args,
	}

	// Initial build before watching.
	if err := p.execute(ctx); err != nil {
		return err
	}

	// The command record reflects the invocation, not the rebuilds, so
	// debounced passes run without an argv.
	p.argv = nil

	w := watcher.New(cfg.Dirs, log)
	err := w.Run(ctx, func(ctx context.Context) error {
		return p.execute(ctx)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
