package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fakeRunner records invocations and returns canned results.
type fakeRunner struct {
	calls  []string
	output string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return f.output, f.err
}

func TestGenerateCscope(t *testing.T) {
	runner := &fakeRunner{}

	result, err := GenerateCscope(context.Background(), runner, "gentags.files")
	if err != nil {
		t.Fatalf("GenerateCscope() failed: %v", err)
	}

	if len(runner.calls) != 1 || runner.calls[0] != "cscope -bkq -i gentags.files" {
		t.Errorf("unexpected invocation: %v", runner.calls)
	}
	if result.Tool != "cscope" {
		t.Errorf("result.Tool = %s", result.Tool)
	}
}

func TestGenerateCtags(t *testing.T) {
	runner := &fakeRunner{}

	_, err := GenerateCtags(context.Background(), runner, "gentags.files")
	if err != nil {
		t.Fatalf("GenerateCtags() failed: %v", err)
	}

	if len(runner.calls) != 1 || runner.calls[0] != "ctags -L gentags.files" {
		t.Errorf("unexpected invocation: %v", runner.calls)
	}
}

func TestToolFailureIsWrapped(t *testing.T) {
	runner := &fakeRunner{
		output: "cscope: cannot open file",
		err:    fmt.Errorf("exit status 1"),
	}

	result, err := GenerateCscope(context.Background(), runner, "gentags.files")
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("want ErrToolFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot open file") {
		t.Errorf("tool output missing from error: %v", err)
	}
	if result == nil || result.Output == "" {
		t.Error("result should carry the tool output even on failure")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	_, err := GenerateCtags(ctx, runner, "gentags.files")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner should not be invoked after cancellation: %v", runner.calls)
	}
}

func TestExecRunner(t *testing.T) {
	runner := NewExecRunner(t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := runner.Run(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if strings.TrimSpace(output) != "hello" {
		t.Errorf("output = %q", output)
	}
}
