// Package indexer invokes the external cscope and ctags binaries
// against a generated file index. Both tools are treated as opaque
// collaborators: gentags hands them the index path and reports their
// exit status, nothing more.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrToolFailed indicates an external indexing tool exited non-zero.
var ErrToolFailed = errors.New("indexing tool failed")

// CommandRunner abstracts external command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

// ExecRunner executes real commands via os/exec.
type ExecRunner struct {
	WorkDir string // Working directory for commands (empty = current dir)
}

// NewExecRunner creates a CommandRunner backed by os/exec.
func NewExecRunner(workDir string) *ExecRunner {
	return &ExecRunner{WorkDir: workDir}
}

// Run executes the command and returns combined stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.WorkDir != "" {
		cmd.Dir = r.WorkDir
	}

	output, err := cmd.CombinedOutput()
	return string(output), err
}

// Result holds the outcome of one tool invocation.
type Result struct {
	Tool     string
	Args     []string
	Output   string
	Duration time.Duration
}

// GenerateCscope builds the cscope database from the index file,
// equivalent to running "cscope -bkq -i <indexFile>".
func GenerateCscope(ctx context.Context, runner CommandRunner, indexFile string) (*Result, error) {
	return run(ctx, runner, "cscope", "-bkq", "-i", indexFile)
}

// GenerateCtags builds the tags file from the index file, equivalent
// to running "ctags -L <indexFile>".
func GenerateCtags(ctx context.Context, runner CommandRunner, indexFile string) (*Result, error) {
	return run(ctx, runner, "ctags", "-L", indexFile)
}

func run(ctx context.Context, runner CommandRunner, tool string, args ...string) (*Result, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	start := time.Now()
	output, err := runner.Run(ctx, tool, args...)
	duration := time.Since(start)

	result := &Result{
		Tool:     tool,
		Args:     args,
		Output:   output,
		Duration: duration,
	}

	if err != nil {
		errMsg := fmt.Sprintf("%s %s failed after %v: %v",
			tool, strings.Join(args, " "), duration.Round(time.Millisecond), err)
		if output != "" {
			errMsg += fmt.Sprintf("\nOutput:\n%s", strings.TrimSpace(output))
		}
		return result, fmt.Errorf("%w: %s", ErrToolFailed, errMsg)
	}

	return result, nil
}
