// Package cli defines the Cobra command tree. The root command runs the
// setup orchestration; each other file registers one subcommand. Command
// implementations delegate to internal packages for business logic and only
// handle flag parsing, I/O wiring, and user interaction.
package cli
