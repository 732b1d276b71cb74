// Package htmlsrc reads HTML invoices (the "printable invoice" pages and
// invoice e-mails vendors produce) into engine.Documents.
//
// Unlike the PDF reader, HTML gives us real table structure: every
// <table> element becomes a cell grid, and the remaining body text
// becomes the line sequence.
package htmlsrc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"invoicetl/internal/engine"
	"invoicetl/internal/source"
)

func init() {
	source.Register(".html", Load)
	source.Register(".htm", Load)
}

// Load parses the HTML file at path.
//
// Tables are lifted out first; their text does not additionally appear in
// the line sequence, so a cell value cannot masquerade as a field line.
// Line structure follows the document's own text layout, which for saved
// invoice pages keeps one logical line per source line.
func Load(_ context.Context, path string) (engine.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return engine.Document{}, fmt.Errorf("read html: %w", err)
	}

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(string(b)))
	if err != nil {
		return engine.Document{}, fmt.Errorf("parse html: %w", err)
	}

	tables := extractTables(gq)

	body := gq.Find("body")
	body.Find("table").Remove()

	var lines []string
	for _, raw := range strings.Split(body.Text(), "\n") {
		lines = append(lines, strings.TrimSpace(raw))
	}

	return engine.Document{
		ID:     filepath.Base(path),
		Lines:  lines,
		Tables: tables,
	}, nil
}

// extractTables converts each <table> into a rectangular grid. DOM order
// is preserved for tables and rows; th and td cells are both read so a
// header row marked up either way classifies the same.
func extractTables(gq *goquery.Document) []engine.Table {
	var tables []engine.Table
	gq.Find("table").Each(func(_ int, tableSel *goquery.Selection) {
		var table engine.Table
		tableSel.Find("tr").Each(func(_ int, rowSel *goquery.Selection) {
			var row []*string
			rowSel.Find("th, td").Each(func(_ int, cellSel *goquery.Selection) {
				v := strings.TrimSpace(cellSel.Text())
				row = append(row, &v)
			})
			if len(row) > 0 {
				table = append(table, row)
			}
		})
		if len(table) > 0 {
			tables = append(tables, table)
		}
	})
	return tables
}
