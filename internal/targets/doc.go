// Package targets holds the canonical table of development-only paths that
// belong in a package's ignore file. The table is embedded YAML checked
// against an embedded JSON schema; its order is the order in which
// suggestions are emitted.
package targets
