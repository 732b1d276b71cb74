// Package jsondoc reads pre-extracted document dumps: JSON files holding
// the {id, lines, tables} decomposition an external text/table extractor
// already produced. This is the interchange format for callers with their
// own PDF table extraction, and the fixture format the tests use.
package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"invoicetl/internal/engine"
	"invoicetl/internal/source"
)

func init() {
	source.Register(".json", Load)
}

// documentFile is the on-disk shape. Table cells may be null, matching
// what grid extractors emit for empty positions.
type documentFile struct {
	ID     string        `json:"id,omitempty"`
	Lines  []string      `json:"lines"`
	Tables [][][]*string `json:"tables,omitempty"`
}

// Load decodes the dump at path. A dump with neither lines nor tables is
// rejected: it cannot possibly classify, and an empty file is far more
// likely a broken upstream extractor than a real document.
func Load(_ context.Context, path string) (engine.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return engine.Document{}, fmt.Errorf("read document dump: %w", err)
	}

	var df documentFile
	if err := json.Unmarshal(b, &df); err != nil {
		return engine.Document{}, fmt.Errorf("parse document dump %s: %w", filepath.Base(path), err)
	}
	if len(df.Lines) == 0 && len(df.Tables) == 0 {
		return engine.Document{}, fmt.Errorf("document dump %s has no lines and no tables", filepath.Base(path))
	}

	id := df.ID
	if id == "" {
		id = filepath.Base(path)
	}

	tables := make([]engine.Table, len(df.Tables))
	for i, t := range df.Tables {
		tables[i] = engine.Table(t)
	}

	return engine.Document{
		ID:     id,
		Lines:  df.Lines,
		Tables: tables,
	}, nil
}
