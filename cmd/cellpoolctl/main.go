// ============================================================================
// Cellpool CLI - Main Entry Point
// ============================================================================
//
// File: cmd/cellpoolctl/main.go
// Purpose: Application entry point and CLI initialization
//
// Responsibilities:
//   1. Version Management - Inject build info via ldflags
//   2. Panic Recovery - Catch unexpected panics gracefully
//   3. CLI Setup - Build and configure Cobra command interface
//   4. Error Handling - Unified command execution error handling
//
// Version Injection:
//   Variables injected at build time via -ldflags:
//   go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
//
// Usage:
//   ./cellpoolctl --help              # Show help
//   ./cellpoolctl run                  # Start a pool and keep it alive
//   ./cellpoolctl bench --jobs 100000  # Submit a burst and report throughput
//   ./cellpoolctl status               # Show config and host resource usage
//
// ============================================================================

package main

import (
	"fmt"
	"os"

	"github.com/cellpool/cellpool/internal/cli"
)

// Build-time version injection via ldflags.
var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

// main is the program entry point. Note this top-level recover is the one
// place in the repository allowed to swallow a panic from outside a job:
// it only protects CLI plumbing (flag parsing, config loading), never the
// pool's own failure barrier, which lives in internal/pool/worker.go.
func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	rootCmd := cli.BuildCLI()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
