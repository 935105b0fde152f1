// =============================================================================
// Sales Computation - Main Entry Point
// =============================================================================
//
// This is the main entry point for the computesales CLI application.
// It records the process start time and delegates to the cmd package.
//
// USAGE:
//   computesales <priceCatalogue> <salesRecord>  - Compute total sales
//   computesales catalogue <priceCatalogue>      - List a normalized catalogue
//   computesales version                         - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core logic (document model, loaders, normalizers,
//                  totalizer, report, config, logging)
//
// =============================================================================

package main

import (
	"time"

	"github.com/ginjaninja78/computesales/cmd"
)

// main is the entry point of the application.
// The start time is taken before any file I/O so the reported execution time
// covers the whole run.
func main() {
	startedAt := time.Now()
	cmd.Execute(startedAt)
}
