// Package export renders assembled invoice rows to the formats the tool
// ships: XLSX workbooks and JSON arrays.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"invoicetl/internal/engine"
)

// Sheet is the worksheet name every workbook uses.
const Sheet = "Invoices"

// widthFor gives text-heavy columns room; everything else keeps the
// excelize default.
var widthFor = map[string]float64{
	"description":      36,
	"seller_details":   40,
	"billing_address":  48,
	"shipping_address": 48,
	"source_file":      28,
}

// XLSXBytes renders rows into a single-sheet workbook. Columns follow
// the given order; a row simply leaves cells blank for columns it does
// not carry. Numeric values become real number cells, not text.
func XLSXBytes(columns []string, rows []engine.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(Sheet, cell, col); err != nil {
			return nil, fmt.Errorf("write header %q: %w", col, err)
		}

		if w, ok := widthFor[col]; ok {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, fmt.Errorf("column name: %w", err)
			}
			if err := f.SetColWidth(Sheet, name, name, w); err != nil {
				return nil, fmt.Errorf("column width %q: %w", col, err)
			}
		}
	}

	for r, row := range rows {
		for c, col := range columns {
			v, ok := row[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(Sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write %s row %d: %w", col, r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders rows and writes the workbook to path, creating
// parent directories as needed.
func WriteXLSX(columns []string, rows []engine.Row, path string) error {
	b, err := XLSXBytes(columns, rows)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteJSON writes rows as one JSON array of flat objects. Column order
// is irrelevant for JSON; object keys carry the field names.
func WriteJSON(w io.Writer, rows []engine.Row) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if rows == nil {
		rows = []engine.Row{}
	}
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	return nil
}
