package sales

import (
	"testing"

	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/ginjaninja78/computesales/internal/logging"
	"github.com/ginjaninja78/computesales/internal/types"
)

func mustParse(t *testing.T, input string) document.Value {
	t.Helper()
	v, err := document.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return v
}

// render flattens lines to "product=quantity" strings for comparison.
func render(lines types.SalesRecord) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Product.String() + "=" + l.Quantity.String()
	}
	return out
}

func assertLines(t *testing.T, got types.SalesRecord, want []string) {
	t.Helper()
	r := render(got)
	if len(r) != len(want) {
		t.Fatalf("got %d lines %v, want %d %v", len(r), r, len(want), want)
	}
	for i := range want {
		if r[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, r[i], want[i])
		}
	}
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Shape
	}{
		{name: "product lines", input: `[{"Product": "Widget", "Quantity": 4}]`, want: ShapeProductLines},
		{name: "quantity only", input: `[{"Quantity": 4}]`, want: ShapeProductLines},
		{name: "item maps", input: `[{"Widget": 3, "Gadget": 1}]`, want: ShapeItemMaps},
		{name: "first object decides", input: `[5, {"Product": "Widget"}]`, want: ShapeProductLines},
		{name: "single object", input: `{"Product": "Widget", "Quantity": 1}`, want: ShapeProductLines},
		{name: "empty array", input: `[]`, want: ShapeItemMaps},
		{name: "scalar", input: `"sales"`, want: ShapeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectShape(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("DetectShape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalize_ProductLines(t *testing.T) {
	raw := mustParse(t, `[
		{"SALE_ID": 1, "Product": "Widget", "Quantity": 4},
		{"SALE_ID": 1, "Product": "Gadget", "Quantity": "two"},
		{"SALE_ID": 2, "Quantity": 1},
		{"SALE_ID": 2, "Product": "Widget"}
	]`)

	lines := Normalize(raw, logging.Discard())

	assertLines(t, lines, []string{
		"Widget=4",
		"Gadget=two",
		"<missing>=1",
		"Widget=<missing>",
	})
	if !lines[2].Product.IsMissing() {
		t.Error("record without Product should yield a missing product")
	}
}

func TestNormalize_ItemMapsKeepOrder(t *testing.T) {
	raw := mustParse(t, `[{"Widget": 3, "Gadget": 1}, {}, {"Zeta": 1, "Alpha": [2]}]`)

	lines := Normalize(raw, logging.Discard())

	assertLines(t, lines, []string{
		"Widget=3",
		"Gadget=1",
		"Zeta=1",
		"Alpha=[2]",
	})
}

func TestNormalize_ItemMapsRepeatedKey(t *testing.T) {
	raw := mustParse(t, `[{"Widget": 1, "Gadget": 2, "Widget": 3}]`)

	lines := Normalize(raw, logging.Discard())

	assertLines(t, lines, []string{
		"Widget=3",
		"Gadget=2",
	})
}

func TestNormalize_SkipsNonObjectEntries(t *testing.T) {
	raw := mustParse(t, `[{"Product": "Widget", "Quantity": 1}, 7, null, ["x"], {"Product": "Gadget", "Quantity": 2}]`)

	lines := Normalize(raw, logging.Discard())

	assertLines(t, lines, []string{"Widget=1", "Gadget=2"})
}

func TestNormalize_SingleObject(t *testing.T) {
	lines := Normalize(mustParse(t, `{"Widget": 2}`), logging.Discard())

	assertLines(t, lines, []string{"Widget=2"})
}

func TestNormalize_Unsupported(t *testing.T) {
	lines := Normalize(mustParse(t, `42`), logging.Discard())

	if lines == nil || len(lines) != 0 {
		t.Errorf("Normalize(42) = %v, want empty record", lines)
	}
}
