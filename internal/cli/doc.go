// Package cli defines the Cobra command tree for the devsetup CLI. Each file
// in this package registers one top-level command (tools, setup, reset, etc.)
// with the root command. Commands resolve the repository and home directory,
// delegate to the internal packages and only handle flags and output.
package cli
