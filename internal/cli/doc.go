// Package cli defines the Cobra command tree for the dmn CLI. Each file in
// this package registers one top-level command with the root command.
// Commands delegate to internal packages and only handle flags, output and
// the choice of confirmer.
package cli
