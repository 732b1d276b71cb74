// Package all links every storage backend. Import it for side effects
// from binaries that select a backend at runtime.
package all

import (
	// Backend factories.
	_ "invoicetl/internal/storage/mssql"
	_ "invoicetl/internal/storage/postgres"
	_ "invoicetl/internal/storage/sqlite"

	// The mssql backend relies on the sqlserver database/sql driver
	// being registered by whoever links it.
	_ "github.com/microsoft/go-mssqldb"
)
