package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// UnboundedDepth disables the depth limit for a scan.
const UnboundedDepth = -1

// ErrNoValidInput indicates that none of the requested roots could be scanned.
var ErrNoValidInput = errors.New("no valid directories to scan")

// ErrDirectoryNotFound indicates a requested root directory does not exist.
var ErrDirectoryNotFound = errors.New("directory not found")

// Config describes a single scan request. It is constructed once per
// invocation and never mutated afterwards.
type Config struct {
	// Dirs is the ordered list of root directories to scan.
	Dirs []string
	// Exclude is a list of path prefixes; any directory or file whose
	// path starts with one of them is skipped, subtree included.
	Exclude []string
	// Depth limits how many directory levels below each root are
	// visited. 0 means only a root's direct children; UnboundedDepth
	// means no limit.
	Depth int
	// Types is the list of requested language tags.
	Types []string
}

// RootError records a problem with a single requested root directory.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("root %s: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// Result holds the outcome of a scan.
type Result struct {
	// Files contains the sorted absolute paths of every matched file,
	// with no duplicates. Empty is a valid outcome, not an error.
	Files []string
	// Errors contains recoverable problems encountered during the scan:
	// missing roots and unreadable subtrees. The scan continues past
	// all of them.
	Errors []error
}

// Collect walks every root in cfg and returns the matched files.
//
// A missing root is reported in Result.Errors without aborting the scan
// of the remaining roots. A subtree that cannot be read (permission
// denied) is skipped and reported the same way. Collect fails outright
// only when a language tag is unknown or when not a single requested
// root could be scanned.
func Collect(cfg Config) (*Result, error) {
	suffixes, err := SuffixesFor(cfg.Types)
	if err != nil {
		return nil, err
	}

	excludes, err := normalizePrefixes(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}
	seen := make(map[string]bool)
	validRoots := 0

	for _, root := range cfg.Dirs {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			result.Errors = append(result.Errors, &RootError{Root: root, Err: err})
			continue
		}

		info, err := os.Stat(absRoot)
		if err != nil {
			if os.IsNotExist(err) {
				err = ErrDirectoryNotFound
			}
			result.Errors = append(result.Errors, &RootError{Root: root, Err: err})
			continue
		}
		if !info.IsDir() {
			result.Errors = append(result.Errors, &RootError{Root: root, Err: fmt.Errorf("not a directory")})
			continue
		}

		validRoots++
		walkRoot(absRoot, cfg.Depth, excludes, suffixes, seen, result)
	}

	if validRoots == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoValidInput, cfg.Dirs)
	}

	sort.Strings(result.Files)
	return result, nil
}

// walkRoot traverses a single root, appending matched files and
// recoverable errors to result.
func walkRoot(root string, depth int, excludes []string, suffixes map[string]struct{}, seen map[string]bool, result *Result) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: record it and keep walking. WalkDir
			// already refuses to descend into a directory it cannot
			// read, so returning nil skips just that subtree.
			result.Errors = append(result.Errors, fmt.Errorf("skipping %s: %w", path, err))
			return nil
		}

		if path == root {
			return nil
		}

		if hasPrefix(path, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if depth >= 0 && levelBelow(root, path) > depth {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if _, ok := suffixes[filepath.Ext(d.Name())]; !ok {
			return nil
		}

		if !seen[path] {
			seen[path] = true
			result.Files = append(result.Files, path)
		}
		return nil
	})
}

// levelBelow returns how many directory levels path sits below root.
// A direct subdirectory of root is at level 1.
func levelBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// normalizePrefixes cleans and absolutizes exclusion prefixes so they
// compare against the absolute paths produced by the walk.
func normalizePrefixes(prefixes []string) ([]string, error) {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude path %q: %w", p, err)
		}
		out = append(out, filepath.Clean(abs))
	}
	return out, nil
}

// hasPrefix reports whether path equals one of the prefixes or sits
// underneath one of them.
func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
