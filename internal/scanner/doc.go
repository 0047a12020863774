// Package scanner inspects the top level of a project directory and
// derives the canonical ignore-file suggestions from the target table.
// Scanning is read-only; results are deterministic for a given listing.
package scanner
