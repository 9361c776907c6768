// Package index writes the plain-text file index consumed by cscope
// and ctags: one absolute source file path per line.
package index

import (
	"fmt"
	"strings"

	"github.com/rexnie/gentags/internal/filelock"
)

// Write persists the file list to path atomically. An empty list is
// valid and produces an empty index file.
func Write(path string, files []string) error {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(f)
		b.WriteByte('\n')
	}

	if err := filelock.AtomicWrite(path, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}
