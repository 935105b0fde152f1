// =============================================================================
// Sales Computation - Processing Pipeline
// =============================================================================
//
// This file holds the pipeline run by the root command.
//
// PROCESSING PIPELINE:
//   1. Load both input files (both are always attempted)
//   2. Abort if either failed to load
//   3. Normalize the catalogue and the sales record
//   4. Price every sale line
//   5. Print the report and save the results file
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/computesales/internal/catalogue"
	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/ginjaninja78/computesales/internal/loader"
	"github.com/ginjaninja78/computesales/internal/logging"
	"github.com/ginjaninja78/computesales/internal/report"
	"github.com/ginjaninja78/computesales/internal/sales"
	"github.com/ginjaninja78/computesales/internal/totalizer"
	"github.com/spf13/cobra"
)

// runCompute is the main function that orchestrates the computation.
func runCompute(cmd *cobra.Command, opts *options, args []string, startedAt time.Time) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := newLogger(cmd.ErrOrStderr(), cfg)

	if len(args) > 2 {
		log.Warn("ignoring extra arguments", "args", args[2:])
	}
	priceFile, salesFile := args[0], args[1]

	// =========================================================================
	// STEP 1: LOAD INPUT FILES
	// =========================================================================
	// A failure on the first file must not prevent the second from being
	// checked, so both diagnostics are shown in a single run.

	rawCatalogue, catalogueErr := loadInput(out, log, priceFile, loader.Options{Sheet: cfg.Workbook.CatalogueSheet})
	rawSales, salesErr := loadInput(out, log, salesFile, loader.Options{Sheet: cfg.Workbook.SalesSheet})

	// =========================================================================
	// STEP 2: ABORT ON LOAD FAILURE
	// =========================================================================

	if catalogueErr != nil || salesErr != nil {
		fmt.Fprintln(out, "Cannot continue due to previous errors.")
		return errAborted
	}

	// =========================================================================
	// STEP 3: NORMALIZE
	// =========================================================================

	prices := catalogue.Normalize(rawCatalogue, log)
	lines := sales.Normalize(rawSales, log)

	// =========================================================================
	// STEP 4: TOTALIZE
	// =========================================================================

	result := totalizer.Totalize(prices, lines)
	log.Info("computed total",
		"lines", result.Stats.Lines,
		"priced", result.Stats.PricedLines,
		"unknown_products", result.Stats.UnknownProducts,
		"invalid_quantities", result.Stats.InvalidQuantity,
	)

	// =========================================================================
	// STEP 5: REPORT
	// =========================================================================

	summary := report.Summary{
		Total:   result.Total,
		Elapsed: time.Since(startedAt),
		Errors:  result.Messages(),
	}

	if err := report.WriteConsole(out, summary); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	if err := report.Save(cfg.OutputFile, summary); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nResults saved to %s\n", cfg.OutputFile)
	return nil
}

// loadInput loads one input file and prints its diagnostic on failure.
func loadInput(out io.Writer, log logging.Logger, path string, opts loader.Options) (document.Value, error) {
	v, err := loader.Load(path, opts)
	if err != nil {
		var loadErr *loader.LoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintln(out, loadErr.Diagnostic())
		} else {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		log.Debug("failed to load input", "path", path, "error", err)
		return document.Value{}, err
	}

	log.Debug("loaded input", "path", path, "format", string(loader.DetectFormat(path)), "kind", v.Kind().String())
	return v, nil
}
