// Package pdfsrc reads invoice PDFs into text lines.
//
// The reader recovers the row-ordered text content only. Reconstructing
// cell grids from glyph geometry is a layout problem this project
// deliberately does not solve, so PDF documents carry no tables; invoices
// whose line items only exist as drawn tables come out as header-only
// records, which is a documented outcome. Pre-extracted JSON dumps (see
// jsondoc) are the path for callers that have proper table extraction.
package pdfsrc

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"invoicetl/internal/engine"
	"invoicetl/internal/source"
)

func init() {
	source.Register(".pdf", Load)
}

// Load extracts row-ordered text from every page of the PDF at path.
//
// Pages that fail text extraction are skipped rather than failing the
// document: partial text still gives the detector and field rules
// something to work with.
func Load(_ context.Context, path string) (engine.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return engine.Document{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var lines []string
	for p := 1; p <= r.NumPage(); p++ {
		page := r.Page(p)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var b strings.Builder
			for _, word := range row.Content {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(word.S)
			}
			line := strings.TrimSpace(b.String())
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	return engine.Document{
		ID:    filepath.Base(path),
		Lines: lines,
	}, nil
}
