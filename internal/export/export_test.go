package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/xuri/excelize/v2"

	"invoicetl/internal/engine"
)

// TestXLSXBytes_RoundTrip writes a workbook and reads it back with
// excelize to verify header layout, sparse rows, and numeric cells.
func TestXLSXBytes_RoundTrip(t *testing.T) {
	t.Parallel()

	columns := []string{"description", "quantity", "order_number"}
	rows := []engine.Row{
		{"description": "Widget", "quantity": 2.0, "order_number": "1-2-3"},
		{"order_number": "1-2-3"}, // header-only row: blank item cells
	}

	b, err := XLSXBytes(columns, rows)
	if err != nil {
		t.Fatalf("XLSXBytes: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(Sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "description" || got[0][2] != "order_number" {
		t.Fatalf("header row: %#v", got[0])
	}
	if got[1][0] != "Widget" || got[1][1] != "2" {
		t.Fatalf("data row: %#v", got[1])
	}

	// Quantity must be a number cell, not text.
	ct, err := f.GetCellType(Sheet, "B2")
	if err != nil {
		t.Fatalf("GetCellType: %v", err)
	}
	if ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString {
		t.Fatalf("quantity written as text, cell type %v", ct)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rows := []engine.Row{{"order_id": "OD1234", "total_price": 299.0}}
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output not valid json: %v; %s", err, buf.String())
	}
	if len(got) != 1 || got[0]["order_id"] != "OD1234" || got[0]["total_price"] != 299.0 {
		t.Fatalf("round trip: %#v", got)
	}
}

// TestWriteJSON_EmptyBatch emits an empty array, not JSON null, so
// downstream consumers can always range over the result.
func TestWriteJSON_EmptyBatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if s := buf.String(); s != "[]\n" {
		t.Fatalf("empty batch output %q", s)
	}
}
