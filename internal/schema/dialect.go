package schema

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect abstracts the engine-specific parts of introspection: system
// catalog queries, identifier quoting, and how (or whether) an implicit
// row identity can be expressed.
type Dialect interface {
	// Name returns the driver name this dialect serves.
	Name() string

	// Quote quotes an identifier for interpolation into a query.
	Quote(ident string) string

	// Tables lists user tables in a stable order, excluding system tables.
	Tables(ctx context.Context, db *sql.DB) ([]string, error)

	// Columns returns column metadata for one table in declaration order.
	Columns(ctx context.Context, db *sql.DB, table string) ([]Column, error)

	// IdentityExpr renders the SQL expression that yields the per-row
	// identity for the given spec. It returns an error when the spec
	// requires an implicit row identity the engine does not expose;
	// callers must then skip the table rather than guess.
	IdentityExpr(spec PrimaryKeySpec) (string, error)
}

// ForDriver returns the Dialect for a driver name.
func ForDriver(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return SQLiteDialect{}, nil
	case "mysql":
		return MySQLDialect{}, nil
	default:
		return nil, fmt.Errorf("no dialect for driver %q", driver)
	}
}

// Skipped records a table excluded from introspection and why.
type Skipped struct {
	Table  string
	Reason string
}

// Introspect enumerates user tables and resolves each table's columns and
// primary key spec. A table whose metadata cannot be read is skipped and
// reported, never fatal; a failure to list tables at all is.
func Introspect(ctx context.Context, db *sql.DB, d Dialect) ([]Table, []Skipped, error) {
	names, err := d.Tables(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var tables []Table
	var skipped []Skipped
	for _, name := range names {
		cols, err := d.Columns(ctx, db, name)
		if err != nil {
			skipped = append(skipped, Skipped{Table: name, Reason: fmt.Sprintf("unreadable metadata: %v", err)})
			continue
		}
		if len(cols) == 0 {
			skipped = append(skipped, Skipped{Table: name, Reason: "no column metadata"})
			continue
		}
		tables = append(tables, Table{
			Name:    name,
			Columns: cols,
			PK:      ResolvePrimaryKey(cols),
		})
	}

	return tables, skipped, nil
}
