// Package scan discovers candidate source files for indexing.
//
// A scan walks a set of root directories up to a configurable depth,
// drops anything underneath an excluded path prefix, and keeps regular
// files whose suffix belongs to one of the requested language profiles.
// The output is a sorted, deduplicated list of absolute paths.
//
// The scan is read-only, single-threaded, and deterministic for a given
// filesystem state. Recoverable problems (a missing root, an unreadable
// subtree) are collected in the Result and never abort the remaining
// roots; only unknown language tags or a request with zero usable roots
// fail the whole scan.
package scan
