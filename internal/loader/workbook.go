// =============================================================================
// Sales Computation - Workbook Loader
// =============================================================================
//
// Reads one worksheet of an .xlsx file into the same document shape a JSON
// input of records would produce:
//
//   | title  | price |          [
//   |--------|-------|   ==>      {"title": "Widget", "price": 2.5},
//   | Widget | 2.5   |            {"title": "Gadget", "price": 4}
//   | Gadget | 4     |          ]
//
// SHEET LAYOUT:
//   - The first non-empty row holds the column headers (field names).
//   - Every following non-empty row becomes one object, fields in column order.
//   - Columns with an empty header are ignored.
//   - Empty cells are left out of the object (the field is missing).
//
// CELL TYPES:
//   Raw cell values that parse as a decimal number become numbers; anything
//   else stays a string. Wide sheets (one column per product, one row per
//   sale) therefore load as the multi-item sales shape.
//
// =============================================================================

package loader

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ginjaninja78/computesales/internal/document"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// loadWorkbook reads the named sheet (or the first sheet) of an .xlsx file.
func loadWorkbook(path, sheet string) (document.Value, error) {
	invalid := func(err error) error {
		return &LoadError{Path: path, Format: FormatXLSX, Kind: ErrInvalidFormat, Err: err}
	}

	// Open the XLSX file.
	f, err := excelize.OpenFile(path)
	if err != nil {
		return document.Value{}, invalid(fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return document.Value{}, invalid(fmt.Errorf("workbook has no sheets"))
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return document.Value{}, invalid(fmt.Errorf("sheet %q not found", sheet))
	}

	// Raw values keep numbers free of display formats such as "$2.50".
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return document.Value{}, invalid(fmt.Errorf("failed to read rows: %w", err))
	}

	return rowsToDocument(rows), nil
}

// rowsToDocument converts sheet rows into an array of objects keyed by the
// header row.
func rowsToDocument(rows [][]string) document.Value {
	records := []document.Value{}

	var headers []string
	for _, row := range rows {
		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		if headers == nil {
			headers = make([]string, len(row))
			for i, cell := range row {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}

		var fields []document.Field
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			fields = append(fields, document.Field{Key: headers[i], Value: cellValue(value)})
		}
		records = append(records, document.ObjectValue(fields...))
	}

	return document.ArrayValue(records...)
}

// cellValue types a non-empty raw cell.
func cellValue(raw string) document.Value {
	if d, err := decimal.NewFromString(raw); err == nil {
		return document.NumberValue(json.Number(d.String()))
	}
	return document.StringValue(raw)
}

// isRowEmpty checks if all cells in a row are empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
