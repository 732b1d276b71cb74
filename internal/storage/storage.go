// Package storage defines the backend-agnostic archive for assembled
// invoice rows and the factory backends register with.
//
// Backends (sqlite, postgres, mssql) live in subpackages and register
// themselves from init(); importing invoicetl/internal/storage/all links
// all of them. The interface is intentionally minimal: ensure the schema,
// append rows, close.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"invoicetl/internal/engine"
)

// Config is the minimal configuration needed to open a Store. Kind must
// match a registered backend; DSN validation is backend-specific.
type Config struct {
	Kind string
	DSN  string
}

// Store archives assembled invoice rows.
type Store interface {
	// EnsureSchema creates the invoice_rows table if needed. Idempotent,
	// called once at startup.
	EnsureSchema(ctx context.Context) error

	// InsertRows appends rows under the given batch id and returns how
	// many were written.
	InsertRows(ctx context.Context, batchID string, rows []engine.Row) (int64, error)

	// Close releases backend resources. Call once at shutdown.
	Close()
}

// TableName is the single archive table every backend creates.
const TableName = "invoice_rows"

// ColumnNames is the fixed archive column set: run metadata first, then
// every field the engine can emit, in its canonical order.
//
// Every column is text. Semantically numeric fields can legitimately
// hold retained non-numeric text (coercion failure is a normal outcome),
// so a typed numeric column would either reject or silently drop those
// values; text is the one representation all rows fit.
var ColumnNames = []string{
	"batch_id",
	"source_file",
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

// RowArgs flattens one engine row into insert arguments aligned with
// ColumnNames. Fields absent from the row become NULL.
func RowArgs(batchID string, row engine.Row) []any {
	args := make([]any, 0, len(ColumnNames))
	args = append(args, batchID)
	for _, col := range ColumnNames[1:] {
		v, ok := row[col]
		if !ok {
			args = append(args, nil)
			continue
		}
		switch t := v.(type) {
		case string:
			args = append(args, t)
		case float64:
			args = append(args, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			args = append(args, fmt.Sprint(t))
		}
	}
	return args
}

// ---- backend factory ----

type factory func(ctx context.Context, cfg Config) (Store, error)

var (
	mu        sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a backend under a kind ("sqlite", "postgres",
// "mssql"). Called from backend init() functions.
//
// Panics on empty kind, nil factory, or duplicate registration: failing
// fast beats ambiguous backend selection.
func Register(kind string, f factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("storage: Register called with empty kind")
	}
	if f == nil {
		panic("storage: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("storage: factory already registered for kind=%q", kind))
	}
	factories[kind] = f
}

// New opens a Store using the registered factory for cfg.Kind.
func New(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("storage: missing kind")
	}

	mu.RLock()
	f := factories[cfg.Kind]
	mu.RUnlock()

	if f == nil {
		return nil, fmt.Errorf("storage: unsupported kind=%q", cfg.Kind)
	}
	return f(ctx, cfg)
}
