// Package batch runs the parse pipeline over many input files.
//
// A batch walks a file or directory, loads each supported document,
// assembles its rows, and optionally archives everything under one
// batch id. Document failures are isolated: one bad invoice never
// aborts the sweep.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"invoicetl/internal/engine"
	"invoicetl/internal/metrics"
	"invoicetl/internal/source"
	"invoicetl/internal/storage"
)

// Options configures a batch run.
type Options struct {
	// Workers is the number of documents processed concurrently.
	// Values < 1 mean 1.
	Workers int

	// BatchID tags stored rows; if empty, Process generates a UUID.
	BatchID string

	// Store, when non-nil, receives every assembled row. The caller
	// owns the store (EnsureSchema, Close).
	Store storage.Store
}

// DocResult is the outcome for one input file. Exactly one of Rows and
// Err is meaningful; a document that assembled zero rows has both empty.
type DocResult struct {
	File string
	Rows []engine.Row
	Err  error
}

// Summary reports a completed batch.
type Summary struct {
	BatchID string

	// Results holds one entry per input file, in input order.
	Results []DocResult

	// Stored is how many rows reached the store (0 without one).
	Stored int64
}

// ListInputs resolves path to the sorted list of parseable files. A
// file path returns itself when its extension is supported; a directory
// is walked recursively and filtered the same way.
func ListInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("batch: stat input: %w", err)
	}

	if !info.IsDir() {
		if !source.Supported(path) {
			return nil, fmt.Errorf("batch: unsupported input file %q", path)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && source.Supported(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

// Process runs the pipeline over files and returns a per-file summary.
//
// Results keep the order of files regardless of worker scheduling. The
// returned error covers batch-level failures only (context cancellation,
// store writes); per-document parse failures land in Results.
func Process(ctx context.Context, files []string, opts Options) (Summary, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	batchID := opts.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}
	sum := Summary{
		BatchID: batchID,
		Results: make([]DocResult, len(files)),
	}
	if len(files) == 0 {
		return sum, nil
	}

	idxCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idxCh {
				sum.Results[i] = processFile(ctx, files[i])
			}
		}()
	}

feed:
	for i := range files {
		select {
		case idxCh <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("batch: canceled: %w", err)
	}

	if opts.Store != nil {
		for _, r := range sum.Results {
			if r.Err != nil || len(r.Rows) == 0 {
				continue
			}
			n, err := opts.Store.InsertRows(ctx, batchID, r.Rows)
			sum.Stored += n
			if err != nil {
				return sum, fmt.Errorf("batch: store %s: %w", r.File, err)
			}
		}
	}

	return sum, nil
}

// Rows flattens a summary into the combined row set, skipping failed
// documents. Order follows Results order.
func (s Summary) Rows() []engine.Row {
	var out []engine.Row
	for _, r := range s.Results {
		if r.Err == nil {
			out = append(out, r.Rows...)
		}
	}
	return out
}

// Failed returns the results that carry an error.
func (s Summary) Failed() []DocResult {
	var out []DocResult
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

func processFile(ctx context.Context, path string) DocResult {
	start := time.Now()

	doc, err := source.Load(ctx, path)
	if err != nil {
		metrics.IncCounter(metrics.DocsTotal, 1,
			metrics.Labels{"vendor": string(engine.FormatUnknown), "status": "error"})
		return DocResult{File: path, Err: fmt.Errorf("load %s: %w", path, err)}
	}

	vendor := engine.Detect(doc.Text())
	rows, err := engine.Assemble(doc)

	labels := metrics.Labels{"vendor": string(vendor), "status": "ok"}
	if err != nil {
		labels["status"] = "error"
		var unrec *engine.UnrecognizedFormatError
		if errors.As(err, &unrec) {
			labels["status"] = "unrecognized"
		}
		metrics.IncCounter(metrics.DocsTotal, 1, labels)
		log.Printf("batch: %s: %v", path, err)
		return DocResult{File: path, Err: err}
	}

	for _, row := range rows {
		row["source_file"] = filepath.Base(path)
	}

	metrics.IncCounter(metrics.DocsTotal, 1, labels)
	metrics.IncCounter(metrics.RowsTotal, float64(len(rows)),
		metrics.Labels{"vendor": string(vendor)})
	metrics.ObserveHistogram(metrics.ParseDuration, time.Since(start).Seconds(),
		metrics.Labels{"vendor": string(vendor)})

	return DocResult{File: path, Rows: rows}
}
