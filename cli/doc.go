// Package cli implements the command-line interface for cratedocs.
//
// The cli package provides:
// - Command-line argument parsing and validation
// - Markdown rendering and a man-like pager for terminal output
// - Browser integration for crates.io pages
// - The development-environment refresh command
package cli
