package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestWarningDisplay(t *testing.T) {
	buf := new(bytes.Buffer)

	w := Warning{
		Title:      "Some scan directories could not be read",
		Message:    "2 of 3 roots were missing",
		Paths:      []string{"src/old", "src/gone"},
		Suggestion: "Remove stale directories from the command line.",
	}
	w.Display(buf)

	output := buf.String()
	for _, want := range []string{
		"Warning: Some scan directories could not be read",
		"2 of 3 roots were missing",
		"Affected paths:",
		"1. src/old",
		"2. src/gone",
		"Suggestion:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if !strings.HasPrefix(output, "\x1b[33m") || !strings.HasSuffix(output, "\x1b[0m") {
		t.Error("warning should be wrapped in yellow/reset codes")
	}
}

func TestWarningSinglePath(t *testing.T) {
	buf := new(bytes.Buffer)
	Warning{Title: "t", Paths: []string{"src"}}.Display(buf)

	if !strings.Contains(buf.String(), "Affected path:") {
		t.Errorf("singular form expected: %s", buf.String())
	}
}

func TestWarnNoFilesMatched(t *testing.T) {
	buf := new(bytes.Buffer)
	WarnNoFilesMatched().Display(buf)

	if !strings.Contains(buf.String(), "No source files found") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
