// Command invoicetl parses Amazon and Flipkart invoice documents into
// structured rows and writes them as XLSX workbooks or JSON.
//
// Usage (single document):
//
//	invoicetl -input invoice.pdf -output invoice.xlsx
//
// Usage (directory sweep, one workbook per document plus a combined one):
//
//	invoicetl -input ./invoices -output ./out
//
// Usage (directory sweep, combined workbook only):
//
//	invoicetl -input ./invoices -combined -output all.xlsx
//
// Usage (JSON to stdout):
//
//	invoicetl -input ./invoices -format json
//
// Vendor detection only (no extraction):
//
//	invoicetl -input ./invoices -detect
//
// Archiving and metrics are opt-in:
//
//	invoicetl -input ./invoices -store-kind sqlite -store-dsn invoices.db
//	invoicetl -input ./invoices -metrics-backend datadog -dd-tags env:prod
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"invoicetl/internal/batch"
	"invoicetl/internal/engine"
	"invoicetl/internal/export"
	"invoicetl/internal/metrics"
	"invoicetl/internal/metrics/datadog"
	"invoicetl/internal/source"
	_ "invoicetl/internal/source/all"
	"invoicetl/internal/storage"
	_ "invoicetl/internal/storage/all"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run is split out from main so we can unit test the command without
// spawning an OS process.
//
// It returns a Unix-style exit code:
//   - 0 for success
//   - 2 for usage/config errors
//   - 1 for operational/runtime errors
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("invoicetl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	input := fs.String("input", "", "Invoice file or directory to parse (required)")
	output := fs.String("output", "", "Output file (single input or -combined) or directory (directory input)")
	combined := fs.Bool("combined", false, "Directory input: write one combined output instead of per-document files")
	format := fs.String("format", "xlsx", "Output format: xlsx or json")
	workers := fs.Int("workers", 4, "Documents parsed concurrently")
	detect := fs.Bool("detect", false, "Only report the detected vendor per input, no extraction")
	storeKind := fs.String("store-kind", "", "Optional archive backend: sqlite, postgres, or mssql")
	storeDSN := fs.String("store-dsn", "", "DSN for -store-kind")
	metricsBackend := fs.String("metrics-backend", "none", "Metrics backend: datadog or none")
	ddTags := fs.String("dd-tags", "", "Extra Datadog tags, comma-separated (env:prod,team:finance)")
	timeout := fs.Duration("timeout", 5*time.Minute, "Overall run timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *input == "" {
		fmt.Fprintln(stderr, "missing -input")
		fs.Usage()
		return 2
	}
	if *format != "xlsx" && *format != "json" {
		fmt.Fprintf(stderr, "unsupported -format %q (want xlsx or json)\n", *format)
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	files, err := batch.ListInputs(*input)
	if err != nil {
		fmt.Fprintf(stderr, "list inputs: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "no parseable documents under %s (supported: %s)\n",
			*input, strings.Join(source.Extensions(), ", "))
		return 1
	}

	if *detect {
		return runDetect(ctx, files, stdout, stderr)
	}

	switch *metricsBackend {
	case "none":
	case "datadog":
		be, err := datadog.NewBackend(ctx, datadog.Options{
			Tags: datadog.ParseTagsCSV(*ddTags),
		})
		if err != nil {
			fmt.Fprintf(stderr, "datadog metrics: %v\n", err)
			return 2
		}
		metrics.SetBackend(be)
		defer func() {
			if err := metrics.Close(); err != nil {
				log.Printf("metrics close: %v", err)
			}
		}()
	default:
		fmt.Fprintf(stderr, "unsupported -metrics-backend %q (want datadog or none)\n", *metricsBackend)
		return 2
	}

	opts := batch.Options{Workers: *workers}
	if *storeKind != "" {
		store, err := storage.New(ctx, storage.Config{Kind: *storeKind, DSN: *storeDSN})
		if err != nil {
			fmt.Fprintf(stderr, "open store: %v\n", err)
			return 2
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			fmt.Fprintf(stderr, "ensure schema: %v\n", err)
			return 1
		}
		opts.Store = store
	}

	sum, err := batch.Process(ctx, files, opts)
	if err != nil {
		fmt.Fprintf(stderr, "process batch: %v\n", err)
		return 1
	}
	for _, r := range sum.Failed() {
		fmt.Fprintf(stderr, "skipped %s: %v\n", r.File, r.Err)
	}
	if len(sum.Failed()) == len(sum.Results) {
		fmt.Fprintln(stderr, "no documents parsed")
		return 1
	}

	inputIsDir := len(files) > 1 || files[0] != *input
	if err := writeOutputs(sum, *format, *output, *combined, inputIsDir, stdout); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}

	if opts.Store != nil {
		log.Printf("archived %d rows under batch %s", sum.Stored, sum.BatchID)
	}
	return 0
}

func runDetect(ctx context.Context, files []string, stdout, stderr io.Writer) int {
	code := 0
	for _, f := range files {
		doc, err := source.Load(ctx, f)
		if err != nil {
			fmt.Fprintf(stderr, "detect %s: %v\n", f, err)
			code = 1
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", f, engine.Detect(doc.Text()))
	}
	return code
}

// writeOutputs routes assembled rows to files or stdout.
//
// Single input, or -combined: one output. Directory input without
// -combined: one file per parsed document plus a combined one, all in
// the output directory.
func writeOutputs(sum batch.Summary, format, output string, combined, inputIsDir bool, stdout io.Writer) error {
	if !inputIsDir || combined {
		rows := sum.Rows()
		if format == "json" {
			if output == "" {
				return export.WriteJSON(stdout, rows)
			}
			return writeJSONFile(output, rows)
		}
		path := output
		if path == "" {
			path = replaceExt(sum.Results[0].File, ".xlsx")
		}
		return export.WriteXLSX(engine.Columns(rows), rows, path)
	}

	outDir := output
	if outDir == "" {
		outDir = "."
	}
	for _, r := range sum.Results {
		if r.Err != nil {
			continue
		}
		// Per-document files don't repeat the file they came from; only
		// the combined output carries source_file.
		rows := dropColumn(r.Rows, "source_file")
		name := replaceExt(filepath.Base(r.File), "."+format)
		path := filepath.Join(outDir, name)
		if format == "json" {
			if err := writeJSONFile(path, rows); err != nil {
				return err
			}
			continue
		}
		if err := export.WriteXLSX(engine.Columns(rows), rows, path); err != nil {
			return err
		}
	}

	rows := sum.Rows()
	combinedPath := filepath.Join(outDir, "combined_invoices."+format)
	if format == "json" {
		return writeJSONFile(combinedPath, rows)
	}
	return export.WriteXLSX(engine.Columns(rows), rows, combinedPath)
}

func writeJSONFile(path string, rows []engine.Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := export.WriteJSON(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// dropColumn copies rows without the named column; the originals stay
// intact for the combined output and the store.
func dropColumn(rows []engine.Row, col string) []engine.Row {
	out := make([]engine.Row, len(rows))
	for i, r := range rows {
		c := make(engine.Row, len(r))
		for k, v := range r {
			if k != col {
				c[k] = v
			}
		}
		out[i] = c
	}
	return out
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
