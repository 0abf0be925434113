// Toolkit - configuration reconciliation for automation controllers.
//
// The toolkit reads a project database produced by the configuration
// editor, captures of the controllers' live configuration, and reports
// every difference between the two. It never writes to either side;
// the only thing it persists is its own run history.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/meokisama/toolkit-core/migrations"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Differences are a result, not a failure; the non-zero exit
		// code is the batch-mode contract and needs no error banner.
		if !errors.Is(err, errDifferencesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
