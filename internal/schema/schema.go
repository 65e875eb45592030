// Package schema provides database introspection: table enumeration,
// column metadata with normalized type classes, and per-row identity
// resolution. Nothing here assumes a conventional primary key exists.
package schema

import (
	"sort"
	"strings"
)

// TypeClass is the normalized storage class of a column's declared type.
type TypeClass string

const (
	ClassText    TypeClass = "text"
	ClassInteger TypeClass = "integer"
	ClassReal    TypeClass = "real"
	ClassOther   TypeClass = "other"
)

// NormalizeType folds an arbitrary declared type string into a TypeClass.
// The containment rules mirror SQLite's type affinity: any CHAR/TEXT/CLOB
// is text, any INT is integer, REAL/FLOA/DOUB is real, everything else
// (including an empty declaration) keeps its declared string and classes
// as other.
func NormalizeType(declared string) TypeClass {
	t := strings.ToUpper(declared)
	switch {
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"), strings.Contains(t, "CLOB"):
		return ClassText
	case strings.Contains(t, "INT"):
		return ClassInteger
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return ClassReal
	default:
		return ClassOther
	}
}

// Column holds the metadata needed to classify and stream one column.
// PKOrdinal is the 1-based position within the declared primary key,
// or 0 when the column is not part of it.
type Column struct {
	Name         string
	DeclaredType string
	Class        TypeClass
	PKOrdinal    int
}

// PKKind discriminates how a table's per-row identity is derived.
type PKKind string

const (
	// PKSingle means one declared primary key column.
	PKSingle PKKind = "pk"
	// PKComposite means a multi-column primary key whose text-cast parts
	// are joined with "|" into one identity string.
	PKComposite PKKind = "composite_pk"
	// PKRowID means no declared primary key; the storage engine's
	// implicit ordinal identity is used where the dialect has one.
	PKRowID PKKind = "rowid"
)

// PrimaryKeySpec describes how to compute a stable per-row identity.
type PrimaryKeySpec struct {
	Kind    PKKind
	Columns []string // empty for PKRowID
}

// Table is one introspected user table.
type Table struct {
	Name    string
	Columns []Column
	PK      PrimaryKeySpec
}

// ColumnNames returns the table's column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ResolvePrimaryKey derives the PrimaryKeySpec from column metadata.
// Composite key columns are ordered by their position within the key
// declaration, not by table order, so the identity string is stable
// regardless of column layout.
func ResolvePrimaryKey(cols []Column) PrimaryKeySpec {
	var pk []Column
	for _, c := range cols {
		if c.PKOrdinal > 0 {
			pk = append(pk, c)
		}
	}

	switch len(pk) {
	case 0:
		return PrimaryKeySpec{Kind: PKRowID}
	case 1:
		return PrimaryKeySpec{Kind: PKSingle, Columns: []string{pk[0].Name}}
	default:
		sort.SliceStable(pk, func(i, j int) bool { return pk[i].PKOrdinal < pk[j].PKOrdinal })
		names := make([]string, len(pk))
		for i, c := range pk {
			names[i] = c.Name
		}
		return PrimaryKeySpec{Kind: PKComposite, Columns: names}
	}
}
