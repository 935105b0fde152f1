// =============================================================================
// Sales Computation - Results Report
// =============================================================================
//
// This module renders a computation result. The same block goes to two sinks:
//
// CONSOLE:
//   <blank line>
//   Sales Computation Results
//   ------------------------
//   Total Sales: $10.00
//   Execution Time: 0.0012 seconds
//   <blank line>                       (only when errors exist)
//   Errors encountered:
//   - Unknown product in sales record: 'Gadget'
//
// RESULTS FILE (UTF-8, overwritten):
//   Sales Computation Results
//   ------------------------
//   Total Sales: $10.00
//   Execution Time: 0.0012 seconds
//   <blank line>
//   Errors encountered:                (only when errors exist)
//   - Unknown product in sales record: 'Gadget'
//
// =============================================================================

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

const (
	title     = "Sales Computation Results"
	separator = "------------------------"
)

// Summary is everything the report prints.
type Summary struct {
	// Total is the total sales amount.
	Total decimal.Decimal

	// Elapsed is the wall-clock time from process start to report time.
	Elapsed time.Duration

	// Errors are the rendered per-line error messages in encounter order.
	Errors []string
}

// FormatTotal renders an amount with exactly two decimal places.
func FormatTotal(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatElapsed renders a duration in seconds with four decimal places.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.4f seconds", d.Seconds())
}

// WriteConsole writes the console form of the report.
func WriteConsole(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	writeHeader(bw, s)

	if len(s.Errors) > 0 {
		fmt.Fprintln(bw)
		writeErrors(bw, s.Errors)
	}

	return bw.Flush()
}

// WriteFile writes the results-file form of the report.
func WriteFile(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	writeHeader(bw, s)
	fmt.Fprintln(bw)

	if len(s.Errors) > 0 {
		writeErrors(bw, s.Errors)
	}

	return bw.Flush()
}

// Save writes the results file at path, replacing any previous file.
//
// PARAMETERS:
//   - path: The results file path.
//   - s: The summary to write.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func Save(path string, s Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	if err := WriteFile(file, s); err != nil {
		file.Close()
		return fmt.Errorf("failed to write results file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close results file: %w", err)
	}

	return nil
}

func writeHeader(w io.Writer, s Summary) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Total Sales: %s\n", FormatTotal(s.Total))
	fmt.Fprintf(w, "Execution Time: %s\n", FormatElapsed(s.Elapsed))
}

func writeErrors(w io.Writer, errors []string) {
	fmt.Fprintln(w, "Errors encountered:")
	for _, msg := range errors {
		fmt.Fprintf(w, "- %s\n", msg)
	}
}
