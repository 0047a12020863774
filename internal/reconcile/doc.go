// Package reconcile brings a project's ignore file in line with the
// canonical suggestions. It scans the project, merges the suggestions into
// the existing document without touching user-authored lines, and writes
// the result only when something changed and the change was confirmed (or
// forced).
//
// The pipeline is sequential: scan and load run concurrently, are joined,
// then merge, decide, and at most one confirmation and one write happen.
package reconcile
