package schema

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openFixture(t *testing.T, ddl ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "fixture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	for _, stmt := range ddl {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func TestSQLiteDialect_Tables(t *testing.T) {
	db := openFixture(t,
		`CREATE TABLE messages (id INTEGER PRIMARY KEY, body TEXT)`,
		`CREATE TABLE contacts (id INTEGER PRIMARY KEY, email TEXT)`,
	)

	names, err := SQLiteDialect{}.Tables(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"contacts", "messages"}, names)
}

func TestSQLiteDialect_Columns(t *testing.T) {
	db := openFixture(t,
		`CREATE TABLE messages (
			id INTEGER PRIMARY KEY,
			sender_id INT,
			body TEXT,
			score REAL,
			payload BLOB
		)`,
	)

	cols, err := SQLiteDialect{}.Columns(context.Background(), db, "messages")
	require.NoError(t, err)
	require.Len(t, cols, 5)

	assert.Equal(t, Column{Name: "id", DeclaredType: "INTEGER", Class: ClassInteger, PKOrdinal: 1}, cols[0])
	assert.Equal(t, ClassInteger, cols[1].Class)
	assert.Equal(t, ClassText, cols[2].Class)
	assert.Equal(t, ClassReal, cols[3].Class)
	assert.Equal(t, ClassOther, cols[4].Class)
	assert.Equal(t, "BLOB", cols[4].DeclaredType)
}

func TestSQLiteDialect_Columns_CompositeOrdinals(t *testing.T) {
	db := openFixture(t,
		`CREATE TABLE membership (group_id INT, user_id INT, role TEXT, PRIMARY KEY (group_id, user_id))`,
	)

	cols, err := SQLiteDialect{}.Columns(context.Background(), db, "membership")
	require.NoError(t, err)

	spec := ResolvePrimaryKey(cols)
	assert.Equal(t, PKComposite, spec.Kind)
	assert.Equal(t, []string{"group_id", "user_id"}, spec.Columns)
}

func TestSQLiteDialect_Columns_RejectsBadIdentifier(t *testing.T) {
	db := openFixture(t)
	_, err := SQLiteDialect{}.Columns(context.Background(), db, "x; DROP TABLE y")
	assert.Error(t, err)
}

func TestSQLiteDialect_IdentityExpr(t *testing.T) {
	d := SQLiteDialect{}

	tests := []struct {
		name     string
		spec     PrimaryKeySpec
		expected string
	}{
		{
			name:     "single",
			spec:     PrimaryKeySpec{Kind: PKSingle, Columns: []string{"id"}},
			expected: `"id"`,
		},
		{
			name:     "composite joined with pipe",
			spec:     PrimaryKeySpec{Kind: PKComposite, Columns: []string{"a", "b"}},
			expected: `CAST("a" AS TEXT) || '|' || CAST("b" AS TEXT)`,
		},
		{
			name:     "rowid fallback",
			spec:     PrimaryKeySpec{Kind: PKRowID},
			expected: "rowid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := d.IdentityExpr(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr)
		})
	}
}

func TestSQLiteDialect_CompositeIdentityDistinct(t *testing.T) {
	// Two rows sharing the first key part must still resolve to
	// distinct identity strings.
	db := openFixture(t,
		`CREATE TABLE t (a INT, b TEXT, PRIMARY KEY (a, b))`,
		`INSERT INTO t VALUES (1, 'x'), (1, 'y')`,
	)

	cols, err := SQLiteDialect{}.Columns(context.Background(), db, "t")
	require.NoError(t, err)
	expr, err := SQLiteDialect{}.IdentityExpr(ResolvePrimaryKey(cols))
	require.NoError(t, err)

	rows, err := db.Query(`SELECT ` + expr + ` FROM t ORDER BY b`)
	require.NoError(t, err)
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"1|x", "1|y"}, ids)
}

func TestIntrospect_SQLite(t *testing.T) {
	db := openFixture(t,
		`CREATE TABLE messages (id INTEGER PRIMARY KEY, body TEXT)`,
		`CREATE TABLE notes (content TEXT)`,
	)

	tables, skipped, err := Introspect(context.Background(), db, SQLiteDialect{})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, tables, 2)

	assert.Equal(t, "messages", tables[0].Name)
	assert.Equal(t, PKSingle, tables[0].PK.Kind)
	assert.Equal(t, "notes", tables[1].Name)
	assert.Equal(t, PKRowID, tables[1].PK.Kind)
}
