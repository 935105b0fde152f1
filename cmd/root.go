// =============================================================================
// Sales Computation - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// computes total sales from a price catalogue and a sales record; the other
// commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd      (computesales <priceCatalogue> <salesRecord>)
//   ├── catalogueCmd (computesales catalogue <priceCatalogue>)
//   └── versionCmd   (computesales version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the optional configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ginjaninja78/computesales/internal/config"
	"github.com/ginjaninja78/computesales/internal/logging"
	"github.com/spf13/cobra"
)

// errAborted is returned after the command has already printed its own
// diagnostics; Execute exits non-zero without printing it again.
var errAborted = errors.New("cannot continue due to previous errors")

// =============================================================================
// FLAGS
// =============================================================================

// options holds the values of the command-line flags.
type options struct {
	// cfgFile is the path to the optional configuration file (--config).
	cfgFile string

	// verbose enables debug logging (--verbose).
	verbose bool

	// output overrides the results file path (--output).
	output string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree. startedAt is the process start time;
// the reported execution time is measured from it.
func newRootCmd(startedAt time.Time) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "computesales <priceCatalogue> <salesRecord>",
		Short: "Compute total sales from a price catalogue and a sales record",
		Long: `computesales prices every line of a sales record against a product price
catalogue and reports the total along with any lines it could not price.

Both inputs are JSON documents (or .xlsx workbooks). Two layouts are accepted
for each:

  Price catalogue:  [{"title": "Widget", "price": 2.5}, ...]
                    {"Widget": 2.5, "Gadget": 4}
  Sales record:     [{"Product": "Widget", "Quantity": 4}, ...]
                    [{"Widget": 3, "Gadget": 1}, ...]

The results are printed and saved to SalesResults.txt.

A first argument named "catalogue" or "version" selects that command; pass
such a file with a path prefix instead, for example ./catalogue.

Example Usage:
  computesales priceCatalogue.json salesRecord.json
  computesales --output out/results.txt prices.xlsx sales.json
  computesales catalogue priceCatalogue.json`,

		Args: requireInputs,

		// Errors are printed by Execute.
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			// Usage is only useful for argument errors, which are reported
			// before RunE.
			cmd.SilenceUsage = true
			return runCompute(cmd, opts, args, startedAt)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging on stderr",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().StringVarP(
		&opts.output,
		"output",
		"o",
		"",
		fmt.Sprintf("Path of the results file (default %q)", config.DefaultOutputFile),
	)

	rootCmd.AddCommand(newCatalogueCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// requireInputs checks that both input paths were given.
func requireInputs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("requires a price catalogue and a sales record, got %d argument(s)", len(args))
	}
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI and exits non-zero on failure.
// This is called by main.main().
func Execute(startedAt time.Time) {
	if err := newRootCmd(startedAt).Execute(); err != nil {
		if !errors.Is(err, errAborted) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.output != "" {
		cfg.OutputFile = opts.output
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newLogger creates the run logger. The level was validated with the config.
func newLogger(w io.Writer, cfg *config.Config) logging.Logger {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	return logging.NewRun(w, level)
}
