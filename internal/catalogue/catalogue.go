// Package catalogue turns a raw price-catalogue document into a
// types.PriceCatalogue.
//
// Two document shapes are accepted:
//
//	records:      [{"title": "Widget", "price": 2.5}, ...]   (or one such object)
//	flat mapping: {"Widget": 2.5, "Gadget": 4}
//
// Entries that do not yield a (string name, numeric price) pair are dropped
// without being reported. This stage never fails.
package catalogue

import (
	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/ginjaninja78/computesales/internal/logging"
	"github.com/ginjaninja78/computesales/internal/types"
	"github.com/shopspring/decimal"
)

// Field names of a product record.
const (
	TitleField = "title"
	PriceField = "price"
)

// Shape is the detected layout of a catalogue document.
type Shape int

const (
	ShapeUnsupported Shape = iota
	ShapeRecords
	ShapeSingleRecord
	ShapeFlatMapping
)

func (s Shape) String() string {
	switch s {
	case ShapeRecords:
		return "records"
	case ShapeSingleRecord:
		return "single record"
	case ShapeFlatMapping:
		return "flat mapping"
	default:
		return "unsupported"
	}
}

// DetectShape classifies a raw catalogue document.
//
// An object is a single product record only when it carries both the title
// and the price field; any other object is a flat name-to-price mapping.
func DetectShape(raw document.Value) Shape {
	switch raw.Kind() {
	case document.Array:
		return ShapeRecords
	case document.Object:
		if raw.Has(TitleField) && raw.Has(PriceField) {
			return ShapeSingleRecord
		}
		return ShapeFlatMapping
	default:
		return ShapeUnsupported
	}
}

// Normalize builds the price catalogue from a raw document.
// A repeated product name keeps the last price seen.
func Normalize(raw document.Value, log logging.Logger) types.PriceCatalogue {
	b := types.NewCatalogueBuilder()

	shape := DetectShape(raw)
	switch shape {
	case ShapeRecords:
		for i, record := range raw.Items() {
			addRecord(b, record, i, log)
		}
	case ShapeSingleRecord:
		addRecord(b, raw, 0, log)
	case ShapeFlatMapping:
		for _, f := range raw.UniqueFields() {
			price, ok := toDecimal(f.Value)
			if !ok {
				log.Debug("dropping catalogue entry with non-numeric price", "product", f.Key, "price", f.Value.String())
				continue
			}
			b.Set(f.Key, price)
		}
	default:
		log.Warn("unsupported catalogue document, using an empty catalogue", "kind", raw.Kind().String())
	}

	catalogue := b.Build()
	log.Debug("normalized catalogue", "shape", shape.String(), "products", catalogue.Len())
	return catalogue
}

// addRecord adds one {"title", "price"} record, skipping it when either field
// is missing or has the wrong type.
func addRecord(b *types.CatalogueBuilder, record document.Value, index int, log logging.Logger) {
	title, ok := record.Get(TitleField).AsString()
	if !ok {
		log.Debug("skipping catalogue record without a text title", "index", index)
		return
	}

	price, ok := toDecimal(record.Get(PriceField))
	if !ok {
		log.Debug("skipping catalogue record without a numeric price", "index", index, "title", title)
		return
	}

	b.Set(title, price)
}

// toDecimal converts a numeric document value to an exact decimal. Numbers
// outside the amount exponent bounds are treated as non-numeric.
func toDecimal(v document.Value) (decimal.Decimal, bool) {
	n, ok := v.AsNumber()
	if !ok {
		return decimal.Decimal{}, false
	}
	return types.ParseAmount(n)
}
