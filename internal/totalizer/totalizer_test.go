package totalizer

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"github.com/ginjaninja78/computesales/internal/catalogue"
	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/ginjaninja78/computesales/internal/logging"
	"github.com/ginjaninja78/computesales/internal/sales"
	"github.com/ginjaninja78/computesales/internal/types"
	"github.com/shopspring/decimal"
)

func compute(t *testing.T, catalogueJSON, salesJSON string) Result {
	t.Helper()

	rawCatalogue, err := document.Parse([]byte(catalogueJSON))
	if err != nil {
		t.Fatalf("parse catalogue: %v", err)
	}
	rawSales, err := document.Parse([]byte(salesJSON))
	if err != nil {
		t.Fatalf("parse sales: %v", err)
	}

	log := logging.Discard()
	return Totalize(catalogue.Normalize(rawCatalogue, log), sales.Normalize(rawSales, log))
}

func TestTotalize_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		catalogue  string
		sales      string
		wantTotal  string
		wantErrors []string
	}{
		{
			name:       "known product",
			catalogue:  `[{"title":"Widget","price":2.5}]`,
			sales:      `[{"Product":"Widget","Quantity":4}]`,
			wantTotal:  "10.00",
			wantErrors: []string{},
		},
		{
			name:       "unknown product",
			catalogue:  `[{"title":"Widget","price":2.5}]`,
			sales:      `[{"Product":"Gadget","Quantity":1}]`,
			wantTotal:  "0.00",
			wantErrors: []string{"Unknown product in sales record: 'Gadget'"},
		},
		{
			name:       "flat mapping with item maps",
			catalogue:  `{"Widget":2.5}`,
			sales:      `[{"Widget":3,"Gadget":1}]`,
			wantTotal:  "7.50",
			wantErrors: []string{"Unknown product in sales record: 'Gadget'"},
		},
		{
			name:      "invalid quantities",
			catalogue: `[{"title":"Widget","price":2.5}]`,
			sales: `[
				{"Product":"Widget","Quantity":"two"},
				{"Product":"Widget","Quantity":null},
				{"Product":"Widget","Quantity":[1]},
				{"Product":"Widget"},
				{"Product":"Widget","Quantity":1}
			]`,
			wantTotal: "2.50",
			wantErrors: []string{
				"Invalid quantity for product 'Widget': two",
				"Invalid quantity for product 'Widget': null",
				"Invalid quantity for product 'Widget': [1]",
				"Invalid quantity for product 'Widget': <missing>",
			},
		},
		{
			name:      "boolean quantities count as one and zero",
			catalogue: `[{"title":"Widget","price":2.5}]`,
			sales: `[
				{"Product":"Widget","Quantity":true},
				{"Product":"Widget","Quantity":false},
				{"Widget":true}
			]`,
			wantTotal:  "5.00",
			wantErrors: []string{},
		},
		{
			name:       "repeated item key keeps the last quantity",
			catalogue:  `{"Widget":2.5}`,
			sales:      `[{"Widget":1,"Widget":3}]`,
			wantTotal:  "7.50",
			wantErrors: []string{},
		},
		{
			name:      "quantity exponent out of bounds",
			catalogue: `{"Widget":2}`,
			sales:     `[{"Widget":1e-2000000000},{"Widget":1e1001},{"Widget":1e3}]`,
			wantTotal: "2000.00",
			wantErrors: []string{
				"Invalid quantity for product 'Widget': 1e-2000000000",
				"Invalid quantity for product 'Widget': 1e1001",
			},
		},
		{
			name:       "price exponent out of bounds",
			catalogue:  `{"Widget":1e-2000000000,"Gadget":1e-1000}`,
			sales:      `[{"Widget":1e-2000000000},{"Gadget":1e1000},{"Gadget":1}]`,
			wantTotal:  "1.00",
			wantErrors: []string{"Unknown product in sales record: 'Widget'"},
		},
		{
			name:      "missing and non-text products",
			catalogue: `{"Widget":1, "7":2}`,
			sales:     `[{"Quantity":1},{"Product":7,"Quantity":1},{"Product":null,"Quantity":1}]`,
			wantTotal: "0.00",
			wantErrors: []string{
				"Unknown product in sales record: '<missing>'",
				"Unknown product in sales record: '7'",
				"Unknown product in sales record: 'null'",
			},
		},
		{
			name:      "unknown product wins over bad quantity",
			catalogue: `{"Widget":1}`,
			sales:     `[{"Product":"Gadget","Quantity":"lots"}]`,
			wantTotal: "0.00",
			wantErrors: []string{
				"Unknown product in sales record: 'Gadget'",
			},
		},
		{
			name:       "negative amounts are accepted",
			catalogue:  `{"Refund":-5, "Widget":2}`,
			sales:      `[{"Refund":1,"Widget":-1},{"Widget":4}]`,
			wantTotal:  "1.00",
			wantErrors: []string{},
		},
		{
			name:       "duplicate errors are kept",
			catalogue:  `{}`,
			sales:      `[{"Gadget":1},{"Gadget":1}]`,
			wantTotal:  "0.00",
			wantErrors: []string{"Unknown product in sales record: 'Gadget'", "Unknown product in sales record: 'Gadget'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compute(t, tt.catalogue, tt.sales)

			if total := got.Total.StringFixed(2); total != tt.wantTotal {
				t.Errorf("Total = %s, want %s", total, tt.wantTotal)
			}
			if msgs := got.Messages(); !reflect.DeepEqual(msgs, tt.wantErrors) {
				t.Errorf("Messages = %q, want %q", msgs, tt.wantErrors)
			}
		})
	}
}

func TestTotalize_ErrorRecords(t *testing.T) {
	got := compute(t,
		`{"Widget":2}`,
		`[{"Product":"Widget","Quantity":1},{"Product":"Gadget","Quantity":1},{"Product":"Widget","Quantity":"x"}]`,
	)

	want := []LineError{
		{Kind: UnknownProduct, Line: 1, Product: "Gadget"},
		{Kind: InvalidQuantity, Line: 2, Product: "Widget", Quantity: "x"},
	}
	if !reflect.DeepEqual(got.Errors, want) {
		t.Errorf("Errors = %+v, want %+v", got.Errors, want)
	}

	wantStats := Stats{Lines: 3, PricedLines: 1, UnknownProducts: 1, InvalidQuantity: 1}
	if got.Stats != wantStats {
		t.Errorf("Stats = %+v, want %+v", got.Stats, wantStats)
	}
}

func TestTotalize_Empty(t *testing.T) {
	got := Totalize(types.NewCatalogueBuilder().Build(), nil)

	if !got.Total.IsZero() {
		t.Errorf("Total = %s, want 0", got.Total)
	}
	if got.Errors == nil || len(got.Errors) != 0 {
		t.Errorf("Errors = %v, want empty", got.Errors)
	}
}

// TestTotalize_RandomDocuments checks the documented properties over
// generated inputs: the total is the exact sum over priced lines, every
// rejected line yields exactly one error at its position, and a second run
// gives the same result.
func TestTotalize_RandomDocuments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []string{"Widget", "Gadget", "Gizmo", "Doohickey"}

	for iter := 0; iter < 200; iter++ {
		b := types.NewCatalogueBuilder()
		prices := map[string]decimal.Decimal{}
		for _, p := range products[:2+rng.Intn(2)] {
			price := decimal.New(int64(rng.Intn(100000)), -2)
			b.Set(p, price)
			prices[p] = price
		}
		cat := b.Build()

		var lines types.SalesRecord
		wantTotal := decimal.Zero
		var wantErrors []LineError
		n := rng.Intn(20)
		for i := 0; i < n; i++ {
			name := products[rng.Intn(len(products))]
			line := types.SaleLine{Product: document.StringValue(name)}

			numeric := rng.Intn(4) != 0
			if numeric {
				line.Quantity = document.NumberValue(jsonNumber(rng.Intn(50) - 5))
			} else {
				line.Quantity = document.StringValue("n/a")
			}
			lines = append(lines, line)

			price, known := prices[name]
			switch {
			case !known:
				wantErrors = append(wantErrors, LineError{Kind: UnknownProduct, Line: i, Product: name})
			case !numeric:
				wantErrors = append(wantErrors, LineError{Kind: InvalidQuantity, Line: i, Product: name, Quantity: "n/a"})
			default:
				q, _ := line.Quantity.AsNumber()
				wantTotal = wantTotal.Add(price.Mul(decimal.RequireFromString(q.String())))
			}
		}

		first := Totalize(cat, lines)
		if !first.Total.Equal(wantTotal) {
			t.Fatalf("iter %d: Total = %s, want %s", iter, first.Total, wantTotal)
		}
		if len(first.Errors) != len(wantErrors) || (len(wantErrors) > 0 && !reflect.DeepEqual(first.Errors, wantErrors)) {
			t.Fatalf("iter %d: Errors = %+v, want %+v", iter, first.Errors, wantErrors)
		}

		second := Totalize(cat, lines)
		if !second.Total.Equal(first.Total) || !reflect.DeepEqual(second.Messages(), first.Messages()) {
			t.Fatalf("iter %d: second run differs", iter)
		}
	}
}

func jsonNumber(n int) json.Number {
	return json.Number(strconv.Itoa(n))
}
