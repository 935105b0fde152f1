// =============================================================================
// Sales Computation - Totalizer
// =============================================================================
//
// This module prices a normalized sales record against a price catalogue.
//
// PROCESSING (one linear pass, in sales order):
//   For each sale line:
//     1. Product unknown (or not text)  -> UnknownProduct error, line skipped
//     2. Quantity not a number or bool  -> InvalidQuantity error, line skipped
//     3. Otherwise                      -> total += price * quantity
//
// Neither error stops the pass. Errors are kept as typed records and only
// turned into text by Message(); the report prints those messages in
// encounter order, without deduplication.
//
// ARITHMETIC:
//   Prices, quantities and the total are exact decimals, so the total is the
//   exact sum of price * quantity over every priced line.
//
// =============================================================================

package totalizer

import (
	"fmt"

	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/ginjaninja78/computesales/internal/types"
	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// ErrorKind classifies a rejected sale line.
type ErrorKind int

const (
	// UnknownProduct means the product is absent from the catalogue.
	UnknownProduct ErrorKind = iota + 1

	// InvalidQuantity means the product is known but the quantity is neither
	// a number nor a boolean.
	InvalidQuantity
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownProduct:
		return "unknown_product"
	case InvalidQuantity:
		return "invalid_quantity"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// LineError records one rejected sale line.
type LineError struct {
	Kind ErrorKind

	// Line is the zero-based position of the line in the sales record.
	Line int

	// Product is the product identity as rendered for messages.
	Product string

	// Quantity is the offending quantity as rendered for messages. It is only
	// set for InvalidQuantity.
	Quantity string
}

// Message renders the error for the report.
func (e LineError) Message() string {
	if e.Kind == UnknownProduct {
		return fmt.Sprintf("Unknown product in sales record: '%s'", e.Product)
	}
	return fmt.Sprintf("Invalid quantity for product '%s': %s", e.Product, e.Quantity)
}

// Result is the outcome of one computation.
type Result struct {
	// Total is the sum of price * quantity over every priced line.
	Total decimal.Decimal

	// Errors lists every rejected line in encounter order.
	Errors []LineError

	// Stats contains processing statistics.
	Stats Stats
}

// Stats counts the lines seen by the totalizer.
type Stats struct {
	Lines           int
	PricedLines     int
	UnknownProducts int
	InvalidQuantity int
}

// Messages returns the rendered error messages in encounter order.
func (r Result) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message()
	}
	return out
}

// =============================================================================
// TOTALIZATION
// =============================================================================

// Totalize prices every sale line against the catalogue.
//
// PARAMETERS:
//   - catalogue: The normalized price catalogue.
//   - sales: The normalized sales record.
//
// RETURNS:
//   - The Result holding the total and the rejected lines.
func Totalize(catalogue types.PriceCatalogue, sales types.SalesRecord) Result {
	result := Result{
		Total:  decimal.Zero,
		Errors: []LineError{},
	}

	for i, line := range sales {
		result.Stats.Lines++

		price, known := lookup(catalogue, line.Product)
		if !known {
			result.Stats.UnknownProducts++
			result.Errors = append(result.Errors, LineError{
				Kind:    UnknownProduct,
				Line:    i,
				Product: line.Product.String(),
			})
			continue
		}

		quantity, ok := toQuantity(line.Quantity)
		if !ok {
			result.Stats.InvalidQuantity++
			result.Errors = append(result.Errors, LineError{
				Kind:     InvalidQuantity,
				Line:     i,
				Product:  line.Product.String(),
				Quantity: line.Quantity.String(),
			})
			continue
		}

		result.Total = result.Total.Add(price.Mul(quantity))
		result.Stats.PricedLines++
	}

	return result
}

// lookup finds the price of a product. Only text product identities can
// match a catalogue entry.
func lookup(catalogue types.PriceCatalogue, product document.Value) (decimal.Decimal, bool) {
	name, ok := product.AsString()
	if !ok {
		return decimal.Decimal{}, false
	}
	return catalogue.Lookup(name)
}

// toQuantity converts a quantity to a decimal. Numbers are taken as is and
// booleans count as 1 or 0. Text, null, nested values and missing quantities
// are not quantities.
func toQuantity(v document.Value) (decimal.Decimal, bool) {
	if b, ok := v.AsBool(); ok {
		if b {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	}

	n, ok := v.AsNumber()
	if !ok {
		return decimal.Decimal{}, false
	}
	return types.ParseAmount(n)
}
