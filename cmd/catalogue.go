// =============================================================================
// Sales Computation - Catalogue Command
// =============================================================================
//
// COMMAND USAGE:
//   computesales catalogue <priceCatalogue>
//
// OUTPUT:
//   Shape: records
//
//   Product  Price
//   -------  -----
//   Widget    2.50
//
//   1 product(s)
//
// Useful for checking which entries of a catalogue survive normalization
// before pricing a sales record against it.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/computesales/internal/catalogue"
	"github.com/ginjaninja78/computesales/internal/loader"
	"github.com/ginjaninja78/computesales/internal/report"
	"github.com/spf13/cobra"
)

// newCatalogueCmd builds the 'catalogue' command.
func newCatalogueCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue <priceCatalogue>",
		Short: "List the products and prices read from a price catalogue",
		Long: `Load a price catalogue, normalize it exactly as the computation does, and
print the detected layout followed by every product and its unit price.

Records without a text title or a numeric price are left out of the listing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			log := newLogger(cmd.ErrOrStderr(), cfg)

			raw, err := loadInput(out, log, args[0], loader.Options{Sheet: cfg.Workbook.CatalogueSheet})
			if err != nil {
				return errAborted
			}

			fmt.Fprintf(out, "Shape: %s\n\n", catalogue.DetectShape(raw))
			return report.WriteCatalogue(out, catalogue.Normalize(raw, log))
		},
	}
}
