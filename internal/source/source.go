// Package source turns files on disk into engine.Documents.
//
// Concrete readers (PDF, HTML, pre-extracted JSON dumps) live in
// subpackages and register themselves here by file extension, mirroring
// how storage backends register with the storage factory. Importing
// invoicetl/internal/source/all pulls in every reader.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"invoicetl/internal/engine"
)

// Loader reads one file into a Document. Implementations set Document.ID
// to the file's base name so downstream reporting can name the source.
type Loader func(ctx context.Context, path string) (engine.Document, error)

var (
	mu      sync.RWMutex
	loaders = map[string]Loader{}
)

// Register registers a Loader for a lowercase file extension including
// the dot (".pdf"). Backend packages call Register from init().
//
// Panics on empty extension, nil loader, or duplicate registration;
// failing fast beats ambiguous reader selection.
func Register(ext string, f Loader) {
	mu.Lock()
	defer mu.Unlock()

	if ext == "" || !strings.HasPrefix(ext, ".") {
		panic(fmt.Sprintf("source: Register called with bad extension %q", ext))
	}
	if f == nil {
		panic("source: Register called with nil loader")
	}
	if _, exists := loaders[ext]; exists {
		panic(fmt.Sprintf("source: loader already registered for %q", ext))
	}
	loaders[ext] = f
}

// Supported reports whether some registered reader handles path.
func Supported(path string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := loaders[normExt(path)]
	return ok
}

// Extensions returns the sorted list of registered extensions, for
// usage messages.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(loaders))
	for ext := range loaders {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Load reads path with the reader registered for its extension.
func Load(ctx context.Context, path string) (engine.Document, error) {
	ext := normExt(path)

	mu.RLock()
	f := loaders[ext]
	mu.RUnlock()

	if f == nil {
		return engine.Document{}, fmt.Errorf("source: no reader for %q (extension %q)", path, ext)
	}
	return f(ctx, path)
}

func normExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
