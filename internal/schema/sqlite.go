package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dfirlab/goevidence/internal/sqlutil"
)

// SQLiteDialect introspects SQLite databases via sqlite_master and
// PRAGMA table_info.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) Quote(ident string) string { return sqlutil.QuoteANSI(ident) }

func (d SQLiteDialect) Tables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (d SQLiteDialect) Columns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	if !sqlutil.IsValidIdentifier(table) {
		return nil, &sqlutil.InvalidIdentifierError{Name: table}
	}

	// PRAGMA table_info returns: cid, name, type, notnull, dflt_value, pk.
	// The pk field is the 1-based ordinal within the primary key.
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", d.Quote(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid      int
			name     string
			declared string
			notNull  int
			dflt     interface{}
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, Column{
			Name:         name,
			DeclaredType: declared,
			Class:        NormalizeType(declared),
			PKOrdinal:    pk,
		})
	}
	return cols, rows.Err()
}

func (d SQLiteDialect) IdentityExpr(spec PrimaryKeySpec) (string, error) {
	switch spec.Kind {
	case PKSingle:
		return d.Quote(spec.Columns[0]), nil
	case PKComposite:
		parts := make([]string, len(spec.Columns))
		for i, c := range spec.Columns {
			parts[i] = fmt.Sprintf("CAST(%s AS TEXT)", d.Quote(c))
		}
		return strings.Join(parts, " || '|' || "), nil
	case PKRowID:
		// Fails at query time for WITHOUT ROWID tables lacking a PK;
		// the streamer treats that as a table-level skip.
		return "rowid", nil
	default:
		return "", fmt.Errorf("unknown primary key kind %q", spec.Kind)
	}
}
