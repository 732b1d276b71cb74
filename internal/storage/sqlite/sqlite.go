// Package sqlite archives invoice rows in a SQLite database via the
// cgo-free modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"invoicetl/internal/engine"
	"invoicetl/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg Config) (storage.Store, error) {
		return New(ctx, cfg)
	})
}

// Config is re-exported so the factory closure and direct callers share
// one type.
type Config = storage.Config

type repo struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database named by cfg.DSN.
func New(ctx context.Context, cfg Config) (storage.Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite: missing dsn")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &repo{db: db}, nil
}

func (r *repo) Close() {
	r.db.Close()
}

func (r *repo) EnsureSchema(ctx context.Context) error {
	cols := make([]string, len(storage.ColumnNames))
	for i, c := range storage.ColumnNames {
		cols[i] = c + " TEXT"
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		storage.TableName, strings.Join(cols, ", "))
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return nil
}

func (r *repo) InsertRows(ctx context.Context, batchID string, rows []engine.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	holders := make([]string, len(storage.ColumnNames))
	for i := range holders {
		holders[i] = "?"
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		storage.TableName,
		strings.Join(storage.ColumnNames, ", "),
		strings.Join(holders, ", "))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare: %w", err)
	}
	defer stmt.Close()

	var n int64
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, storage.RowArgs(batchID, row)...); err != nil {
			return n, fmt.Errorf("sqlite: insert: %w", err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return n, nil
}
