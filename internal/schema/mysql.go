package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dfirlab/goevidence/internal/sqlutil"
)

// MySQLDialect introspects MySQL databases via information_schema.
type MySQLDialect struct{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) Quote(ident string) string { return sqlutil.QuoteBacktick(ident) }

func (d MySQLDialect) Tables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		 ORDER BY table_name`)
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

func (d MySQLDialect) Columns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.column_name, c.column_type, COALESCE(k.ordinal_position, 0)
		 FROM information_schema.columns c
		 LEFT JOIN information_schema.key_column_usage k
		   ON k.table_schema = c.table_schema
		  AND k.table_name = c.table_name
		  AND k.column_name = c.column_name
		  AND k.constraint_name = 'PRIMARY'
		 WHERE c.table_schema = DATABASE() AND c.table_name = ?
		 ORDER BY c.ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			name     string
			declared string
			pk       int
		)
		if err := rows.Scan(&name, &declared, &pk); err != nil {
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

func (d MySQLDialect) IdentityExpr(spec PrimaryKeySpec) (string, error) {
	switch spec.Kind {
	case PKSingle:
		return d.Quote(spec.Columns[0]), nil
	case PKComposite:
		parts := make([]string, len(spec.Columns))
		for i, c := range spec.Columns {
			parts[i] = fmt.Sprintf("CAST(%s AS CHAR)", d.Quote(c))
		}
		return "CONCAT(" + strings.Join(parts, ", '|', ") + ")", nil
	case PKRowID:
		// InnoDB keeps its implicit clustered key private; identity
		// correctness is mandatory, so such tables are skipped.
		return "", fmt.Errorf("mysql exposes no implicit row identity for tables without a primary key")
	default:
		return "", fmt.Errorf("unknown primary key kind %q", spec.Kind)
	}
}
