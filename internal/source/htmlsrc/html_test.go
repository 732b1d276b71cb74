package htmlsrc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"invoicetl/internal/engine"
)

// TestLoad_LinesAndTables verifies the split between the two channels:
// <table> elements become cell grids, everything else becomes lines, and
// table text never leaks into the line sequence.
func TestLoad_LinesAndTables(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<p>Amazon.in</p>
<p>Order Number: 123-4567890-1234567</p>
<table>
<tr><th>Description</th><th>Qty</th></tr>
<tr><td>Widget</td><td>2</td></tr>
</table>
</body></html>`

	path := filepath.Join(t.TempDir(), "invoice.html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.ID != "invoice.html" {
		t.Fatalf("ID=%q", doc.ID)
	}

	joined := doc.Text()
	if !containsLine(doc.Lines, "Order Number: 123-4567890-1234567") {
		t.Fatalf("order number line missing from lines: %q", joined)
	}
	if containsLine(doc.Lines, "Widget") {
		t.Fatalf("table text leaked into lines: %q", joined)
	}

	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	tbl := doc.Tables[0]
	if len(tbl) != 2 || len(tbl[0]) != 2 {
		t.Fatalf("table shape: %#v", tbl)
	}
	if *tbl[0][0] != "Description" || *tbl[1][0] != "Widget" || *tbl[1][1] != "2" {
		t.Fatalf("table content: %#v", tbl)
	}
}

// TestLoad_FeedsEngine: an HTML invoice should assemble end to end,
// items included, without any JSON intermediate.
func TestLoad_FeedsEngine(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<p>Flipkart</p>
<p>Order ID: OD1234</p>
<table>
<tr><td>Item</td><td>Qty</td><td>Amount</td></tr>
<tr><td>Phone Case</td><td>1</td><td>299</td></tr>
</table>
</body></html>`

	path := filepath.Join(t.TempDir(), "fk.html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rows, err := engine.Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %#v", rows)
	}
	if rows[0]["order_id"] != "OD1234" || rows[0]["description"] != "Phone Case" || rows[0]["total_price"] != 299.0 {
		t.Fatalf("row: %#v", rows[0])
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
