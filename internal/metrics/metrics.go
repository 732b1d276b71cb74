// Package metrics is a tiny instrumentation front.
//
// Pipeline code records observations through the package-level functions
// and never sees a concrete backend; binaries pick one at startup via
// SetBackend. Without a backend every call is a no-op, so library code
// can instrument unconditionally.
package metrics

import "sync"

// Labels attach dimensions to an observation ("vendor", "status").
type Labels map[string]string

// Backend receives observations. Implementations decide buffering and
// delivery; see internal/metrics/datadog.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)

	// Flush submits whatever is buffered.
	Flush() error

	// Close stops background work and performs a final Flush.
	Close() error
}

// Metric names recorded by the pipeline.
const (
	// DocsTotal counts processed documents, labeled vendor + status
	// (ok, unrecognized, error).
	DocsTotal = "invoice_docs_total"

	// RowsTotal counts assembled output rows, labeled vendor.
	RowsTotal = "invoice_rows_total"

	// ParseDuration is the per-document wall time in seconds, labeled vendor.
	ParseDuration = "invoice_parse_duration_seconds"
)

var (
	mu      sync.RWMutex
	backend Backend
)

// SetBackend installs b as the process-wide backend; nil reverts to the
// no-op default. Returns the previous backend so callers can restore it.
func SetBackend(b Backend) Backend {
	mu.Lock()
	defer mu.Unlock()
	prev := backend
	backend = b
	return prev
}

// IncCounter adds delta to the named counter.
func IncCounter(name string, delta float64, labels Labels) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	if b != nil {
		b.IncCounter(name, delta, labels)
	}
}

// ObserveHistogram records one sample of the named distribution.
func ObserveHistogram(name string, value float64, labels Labels) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	if b != nil {
		b.ObserveHistogram(name, value, labels)
	}
}

// Flush flushes the installed backend, if any.
func Flush() error {
	mu.RLock()
	b := backend
	mu.RUnlock()
	if b == nil {
		return nil
	}
	return b.Flush()
}

// Close closes the installed backend, if any, and uninstalls it.
func Close() error {
	mu.Lock()
	b := backend
	backend = nil
	mu.Unlock()
	if b == nil {
		return nil
	}
	return b.Close()
}
