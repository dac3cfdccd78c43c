// Package cli defines the Cobra command tree for the capsync CLI. Each
// file in this package registers one top-level command (scan, create, sync,
// route, etc.) with the root command. Command implementations delegate to
// internal packages for engine logic and only handle flag parsing, I/O
// formatting, and the approval prompts that gate mutations.
package cli
