// Package display provides user-facing terminal output helpers for the
// gentags CLI.
package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, path := range w.Paths {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, path))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnMissingRoots creates a warning for requested scan roots that do
// not exist on disk.
func WarnMissingRoots(roots []string) Warning {
	return Warning{
		Title:      "Some scan directories could not be read",
		Paths:      roots,
		Suggestion: "Check the -d/--dirs arguments; missing roots are skipped.",
	}
}

// WarnNoFilesMatched creates a warning for a scan that produced an
// empty file list.
func WarnNoFilesMatched() Warning {
	return Warning{
		Title:      "No source files found",
		Message:    "The scan completed but matched nothing.",
		Suggestion: "Check your directories, --types and --exclude filters.",
	}
}
