package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(--help) failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "gentags") {
		t.Errorf("help text should contain 'gentags', got: %s", output)
	}
	if !strings.Contains(output, "cscope") || !strings.Contains(output, "ctags") {
		t.Errorf("help text should mention cscope and ctags, got: %s", output)
	}

	for _, sub := range []string{"run", "clean", "config", "history", "watch"} {
		if !strings.Contains(output, sub) {
			t.Errorf("help text should list the %q subcommand, got: %s", sub, output)
		}
	}
}

func TestRunCommandRejectsPositionalArgs(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"run", "stray-arg"})

	if err := cmd.Execute(); err == nil {
		t.Error("run should reject positional arguments")
	}
}

func TestRunCommandRequiresDirs(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"run"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no directories to scan") {
		t.Errorf("want 'no directories to scan' error, got %v", err)
	}
}

func TestRunCommandRejectsUnknownType(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"run", "-d", "src", "-t", "perl"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown language tag") {
		t.Errorf("want unknown language tag error, got %v", err)
	}
}
