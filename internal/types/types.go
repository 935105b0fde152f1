// =============================================================================
// Sales Computation - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - catalogue  (builds PriceCatalogue)
//   - sales      (builds SalesRecord)
//   - totalizer  (consumes both)
//   - report     (lists a PriceCatalogue)
//
// =============================================================================

package types

import (
	"encoding/json"

	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICE CATALOGUE
// =============================================================================

// PriceCatalogue maps a product name to its unit price.
//
// A catalogue is filled once by its builder and read-only afterwards: the
// only mutating method lives on CatalogueBuilder.
type PriceCatalogue struct {
	prices map[string]decimal.Decimal

	// order holds product names in first-seen order for listings.
	order []string
}

// Lookup returns the unit price of a product.
func (c PriceCatalogue) Lookup(name string) (decimal.Decimal, bool) {
	price, ok := c.prices[name]
	return price, ok
}

// Len returns the number of distinct products.
func (c PriceCatalogue) Len() int {
	return len(c.order)
}

// Names returns product names in the order they were first seen.
func (c PriceCatalogue) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// CatalogueBuilder accumulates (name, price) pairs into a PriceCatalogue.
type CatalogueBuilder struct {
	prices map[string]decimal.Decimal
	order  []string
}

// NewCatalogueBuilder returns an empty builder.
func NewCatalogueBuilder() *CatalogueBuilder {
	return &CatalogueBuilder{prices: make(map[string]decimal.Decimal)}
}

// Set records the price of a product. A repeated name overwrites the earlier
// price (last write wins) but keeps its original listing position.
func (b *CatalogueBuilder) Set(name string, price decimal.Decimal) {
	if _, exists := b.prices[name]; !exists {
		b.order = append(b.order, name)
	}
	b.prices[name] = price
}

// Build returns the finished catalogue. The builder must not be used
// afterwards.
func (b *CatalogueBuilder) Build() PriceCatalogue {
	return PriceCatalogue{prices: b.prices, order: b.order}
}

// =============================================================================
// SALES RECORD
// =============================================================================

// SaleLine is one normalized (product, quantity) unit of work.
type SaleLine struct {
	// Product is the raw product identity. It is normally a String; it is
	// Missing when a record has no product field.
	Product document.Value

	// Quantity is the raw quantity. It is only priced when it is a Number or
	// a Bool (true counts as 1, false as 0).
	Quantity document.Value
}

// SalesRecord is the ordered sequence of sale lines of one input document.
type SalesRecord []SaleLine

// =============================================================================
// AMOUNTS
// =============================================================================

// MaxAmountExponent bounds the decimal exponent of prices and quantities.
// Products and sums of amounts inside the bound stay far from the int32
// exponent limit of decimal.Decimal and from huge rescaling allocations.
const MaxAmountExponent = 1000

// ParseAmount converts a JSON number literal to an exact decimal. Literals
// that do not parse, or whose exponent lies outside ±MaxAmountExponent, are
// not amounts.
func ParseAmount(n json.Number) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp < -MaxAmountExponent || exp > MaxAmountExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}
