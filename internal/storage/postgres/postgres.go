// Package postgres archives invoice rows in PostgreSQL via pgxpool.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"invoicetl/internal/engine"
	"invoicetl/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Store, error) {
		return New(ctx, cfg)
	})
}

type repo struct {
	pool *pgxpool.Pool
}

// New connects to the database named by cfg.DSN (any libpq-style URL or
// keyword DSN pgx accepts).
func New(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres: missing dsn")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &repo{pool: pool}, nil
}

func (r *repo) Close() {
	r.pool.Close()
}

func (r *repo) EnsureSchema(ctx context.Context) error {
	cols := make([]string, len(storage.ColumnNames))
	for i, c := range storage.ColumnNames {
		cols[i] = c + " TEXT"
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		storage.TableName, strings.Join(cols, ", "))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

func (r *repo) InsertRows(ctx context.Context, batchID string, rows []engine.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	holders := make([]string, len(storage.ColumnNames))
	for i := range holders {
		holders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		storage.TableName,
		strings.Join(storage.ColumnNames, ", "),
		strings.Join(holders, ", "))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var n int64
	for _, row := range rows {
		if _, err := tx.Exec(ctx, q, storage.RowArgs(batchID, row)...); err != nil {
			return n, fmt.Errorf("postgres: insert: %w", err)
		}
		n++
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return n, nil
}
