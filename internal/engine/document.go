// Package engine implements the invoice parsing core: vendor format
// detection, rule-driven field extraction from text lines, semantic
// classification of table columns, and assembly of flat output rows.
//
// Design constraints:
//   - The engine is pure and synchronous. It holds no state across calls,
//     performs no I/O, and is safe to invoke concurrently (one call per
//     document) without coordination.
//   - Extraction is best-effort: a field or item pattern that does not match
//     is silently omitted. The only hard failure is a document whose text
//     matches no known vendor format.
//   - Where PDF/HTML decoding the documents come from lives is not this
//     package's concern; see internal/source.
package engine

import (
	"sort"
	"strings"
)

// Document is one source document handed to the engine: an opaque
// identifier plus the text lines and cell grids an external extractor
// produced. The engine never mutates a Document.
type Document struct {
	ID     string
	Lines  []string
	Tables []Table
}

// Table is a rectangular grid of optional cells. Row 0 is the header row.
// A nil cell means the extractor found nothing at that position.
type Table [][]*string

// Text returns the document text as a single newline-joined string, the
// form the detector and single-line field patterns operate on.
func (d Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Row is one assembled output row: a flat mapping from field name to a
// normalized string or a coerced numeric value.
type Row = map[string]any

// columnOrder is the canonical ordering of output columns: line-item
// fields first, then header fields. Mirrors the column layout downstream
// spreadsheets expect.
var columnOrder = []string{
	"description",
	"quantity",
	"unit_price",
	"total_price",
	"order_number",
	"order_id",
	"invoice_number",
	"order_date",
	"invoice_date",
	"issue_date",
	"seller_details",
	"billing_address",
	"shipping_address",
	"total_amount",
}

// Columns returns the union of fields present across rows in canonical
// order. Fields the engine does not know about (e.g. a caller-added
// source_file column) follow in first-seen order.
func Columns(rows []Row) []string {
	present := make(map[string]bool)
	for _, r := range rows {
		for k := range r {
			present[k] = true
		}
	}

	out := make([]string, 0, len(present))
	for _, c := range columnOrder {
		if present[c] {
			out = append(out, c)
			delete(present, c)
		}
	}

	// Unknown fields follow the canonical set, sorted for stability.
	if len(present) > 0 {
		extras := make([]string, 0, len(present))
		for k := range present {
			extras = append(extras, k)
		}
		sort.Strings(extras)
		out = append(out, extras...)
	}
	return out
}
