package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rexnie/gentags/internal/config"
	"github.com/rexnie/gentags/internal/display"
	"github.com/rexnie/gentags/internal/filelock"
	"github.com/rexnie/gentags/internal/history"
	"github.com/rexnie/gentags/internal/index"
	"github.com/rexnie/gentags/internal/indexer"
	"github.com/rexnie/gentags/internal/logger"
	"github.com/rexnie/gentags/internal/scan"
)

// defaultHistoryDB is where run history is kept, relative to the
// working directory.
const defaultHistoryDB = ".gentags/history.db"

// runOptions carries the run command's flag values.
type runOptions struct {
	dirs       []string
	types      []string
	exclude    []string
	depth      int
	indexFile  string
	configFile string
	historyDB  string
	indexOnly  bool
	verbose    bool
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan directories and generate the navigation databases",
		Long: `Scan the requested directories for source files, write the file
index and effective configuration, then invoke cscope and ctags on the
index. With --index-only the external tools are skipped.

Examples:
  # Scan src and lib for C/C++ files
  gentags run -d src -d lib

  # Python and TypeScript, excluding tests, two levels deep
  gentags run -d src -t python -t typescript -e src/test --depth 2

  # Only generate the file index
  gentags run -d src -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return executeRun(cmd.Context(), cfg, opts, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	addScanFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.indexOnly, "index-only", "i", false, "only generate the file index, skip cscope and ctags")

	return cmd
}

// addScanFlags registers the flags shared by run and watch.
func addScanFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringSliceVarP(&opts.dirs, "dirs", "d", nil, "directories to scan (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.types, "types", "t", nil, "language tags to include: c_cpp, python, javascript, typescript, all (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "e", nil, "path prefixes to exclude, subtrees included (repeatable)")
	cmd.Flags().IntVar(&opts.depth, "depth", scan.UnboundedDepth, "maximum directory depth below each root (-1 = unbounded, 0 = direct children only)")
	cmd.Flags().StringVarP(&opts.indexFile, "index-file", "f", config.DefaultIndexFile, "file index path")
	cmd.Flags().StringVarP(&opts.configFile, "config-file", "o", config.DefaultConfigFile, "config file path")
	cmd.Flags().StringVar(&opts.historyDB, "history-db", defaultHistoryDB, "run history database path")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
}

// resolveConfig builds the effective configuration: defaults, then the
// config file, then explicitly set flags. The result is validated and
// never mutated afterwards.
func resolveConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dirs") {
		cfg.Dirs = opts.dirs
	}
	if flags.Changed("types") {
		cfg.Types = opts.types
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("depth") {
		cfg.Depth = opts.depth
	}
	if flags.Changed("index-file") {
		cfg.IndexFile = opts.indexFile
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if len(cfg.Dirs) == 0 {
		return nil, fmt.Errorf("no directories to scan: pass -d/--dirs or set dirs in %s", opts.configFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// executeRun performs one locked pipeline pass for the run command.
func executeRun(ctx context.Context, cfg *config.Config, opts *runOptions, errOut io.Writer) error {
	log := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)

	lock := filelock.NewRunLock(config.DefaultLockFile)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

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
	return p.execute(ctx)
}

// pipeline is one full scan-config-index-tools pass.
type pipeline struct {
	cfg        *config.Config
	configFile string
	indexOnly  bool
	runner     indexer.CommandRunner
	log        *logger.ConsoleLogger
	warnOut    io.Writer
	historyDB  string // empty disables history recording
	argv       []string
}

// execute runs the pipeline once. Recoverable scan problems are warned
// about and the run continues; tool failures fail the run after being
// recorded in history.
func (p *pipeline) execute(ctx context.Context) error {
	start := time.Now()

	p.log.Infof("Scanning %d directories...", len(p.cfg.Dirs))
	result, err := scan.Collect(p.cfg.ScanConfig())
	if err != nil {
		return err
	}

	var missingRoots []string
	for _, scanErr := range result.Errors {
		p.log.Warnf("%v", scanErr)
		var rootErr *scan.RootError
		if errors.As(scanErr, &rootErr) {
			missingRoots = append(missingRoots, rootErr.Root)
		}
	}
	if len(missingRoots) > 0 && p.warnOut != nil {
		display.WarnMissingRoots(missingRoots).Display(p.warnOut)
	}

	p.log.Infof("Matched %d files", len(result.Files))
	if len(result.Files) == 0 && p.warnOut != nil {
		display.WarnNoFilesMatched().Display(p.warnOut)
	}

	p.log.Debugf("Writing config file %s", p.configFile)
	if err := p.cfg.Write(p.configFile); err != nil {
		return err
	}

	if len(p.argv) > 0 {
		if err := saveCommand(config.DefaultCmdFile, p.argv); err != nil {
			p.log.Warnf("Failed to save command record: %v", err)
		}
	}

	p.log.Debugf("Writing index file %s", p.cfg.IndexFile)
	if err := index.Write(p.cfg.IndexFile, result.Files); err != nil {
		return err
	}

	runErr := p.runTools(ctx)

	p.recordHistory(start, len(result.Files), runErr)

	if runErr != nil {
		return runErr
	}

	p.log.Infof("All operations completed in %s", logger.FormatDuration(time.Since(start)))
	return nil
}

// runTools invokes cscope then ctags, unless index-only was requested.
func (p *pipeline) runTools(ctx context.Context) error {
	if p.indexOnly {
		p.log.Infof("Index file generated, skipping cscope and ctags (--index-only)")
		return nil
	}

	p.log.Infof("Generating cscope database...")
	cscopeResult, err := indexer.GenerateCscope(ctx, p.runner, p.cfg.IndexFile)
	if err != nil {
		return err
	}
	p.log.Debugf("cscope finished in %s", logger.FormatDuration(cscopeResult.Duration))

	p.log.Infof("Generating tags file...")
	ctagsResult, err := indexer.GenerateCtags(ctx, p.runner, p.cfg.IndexFile)
	if err != nil {
		return err
	}
	p.log.Debugf("ctags finished in %s", logger.FormatDuration(ctagsResult.Duration))

	return nil
}

// recordHistory appends this run to the history database. History
// failures never fail the run.
func (p *pipeline) recordHistory(start time.Time, fileCount int, runErr error) {
	if p.historyDB == "" {
		return
	}

	store, err := history.NewStore(p.historyDB)
	if err != nil {
		p.log.Warnf("Failed to open history database: %v", err)
		return
	}
	defer store.Close()

	run := history.Run{
		StartedAt: start,
		Duration:  time.Since(start),
		Dirs:      p.cfg.Dirs,
		Types:     p.cfg.Types,
		Excludes:  p.cfg.Exclude,
		Depth:     p.cfg.Depth,
		IndexFile: p.cfg.IndexFile,
		FileCount: fileCount,
		Status:    history.StatusOK,
	}
	switch {
	case runErr != nil:
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
	case p.indexOnly:
		run.Status = history.StatusIndexOnly
	}

	if _, err := store.RecordRun(run); err != nil {
		p.log.Warnf("Failed to record run history: %v", err)
	}
}

// saveCommand writes the invoking command line to path.
func saveCommand(path string, argv []string) error {
	return filelock.AtomicWrite(path, []byte(strings.Join(argv, " ")+"\n"))
}
