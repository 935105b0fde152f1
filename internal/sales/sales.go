// Package sales reshapes a raw sales-record document into a
// types.SalesRecord.
//
// Two document shapes are accepted:
//
//	product lines: [{"Product": "Widget", "Quantity": 4}, ...]
//	item maps:     [{"Widget": 3, "Gadget": 1}, ...]
//
// The stage only reshapes. Unknown products and bad quantities pass through
// untouched and are judged by the totalizer.
package sales

import (
	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/ginjaninja78/computesales/internal/logging"
	"github.com/ginjaninja78/computesales/internal/types"
)

// Field names of a product-line record.
const (
	ProductField  = "Product"
	QuantityField = "Quantity"
)

// Shape is the detected layout of a sales document.
type Shape int

const (
	ShapeUnsupported Shape = iota
	ShapeProductLines
	ShapeItemMaps
)

func (s Shape) String() string {
	switch s {
	case ShapeProductLines:
		return "product lines"
	case ShapeItemMaps:
		return "item maps"
	default:
		return "unsupported"
	}
}

// records returns the sale records of a document. A lone object counts as a
// one-record document; scalars have no records.
func records(raw document.Value) ([]document.Value, bool) {
	switch raw.Kind() {
	case document.Array:
		return raw.Items(), true
	case document.Object:
		return []document.Value{raw}, true
	default:
		return nil, false
	}
}

// DetectShape classifies a raw sales document from its first object record.
// A document without any object record has nothing to price and is reported
// as item maps.
func DetectShape(raw document.Value) Shape {
	recs, ok := records(raw)
	if !ok {
		return ShapeUnsupported
	}

	for _, rec := range recs {
		if rec.Kind() != document.Object {
			continue
		}
		if rec.Has(ProductField) || rec.Has(QuantityField) {
			return ShapeProductLines
		}
		return ShapeItemMaps
	}
	return ShapeItemMaps
}

// Normalize produces one SaleLine per sold item, in document order.
//
// Product lines yield one SaleLine per record; a record without a product
// field yields a line with a missing product. Item maps yield one SaleLine
// per distinct key of each record, in field order; a repeated key keeps its
// first position and its last value. Non-object entries are skipped with a
// warning.
func Normalize(raw document.Value, log logging.Logger) types.SalesRecord {
	shape := DetectShape(raw)
	if shape == ShapeUnsupported {
		log.Warn("unsupported sales document, nothing to price", "kind", raw.Kind().String())
		return types.SalesRecord{}
	}

	recs, _ := records(raw)
	lines := make(types.SalesRecord, 0, len(recs))

	for i, rec := range recs {
		if rec.Kind() != document.Object {
			log.Warn("skipping sales entry that is not an object", "index", i, "entry", rec.String())
			continue
		}

		switch shape {
		case ShapeProductLines:
			lines = append(lines, types.SaleLine{
				Product:  rec.Get(ProductField),
				Quantity: rec.Get(QuantityField),
			})
		case ShapeItemMaps:
			for _, f := range rec.UniqueFields() {
				lines = append(lines, types.SaleLine{
					Product:  document.StringValue(f.Key),
					Quantity: f.Value,
				})
			}
		}
	}

	log.Debug("normalized sales", "shape", shape.String(), "records", len(recs), "lines", len(lines))
	return lines
}
