package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		declared string
		expected TypeClass
	}{
		{"TEXT", ClassText},
		{"VARCHAR(255)", ClassText},
		{"NCHAR(10)", ClassText},
		{"CLOB", ClassText},
		{"text", ClassText},
		{"INTEGER", ClassInteger},
		{"INT", ClassInteger},
		{"BIGINT", ClassInteger},
		{"TINYINT(1)", ClassInteger},
		{"int unsigned", ClassInteger},
		{"REAL", ClassReal},
		{"FLOAT", ClassReal},
		{"DOUBLE PRECISION", ClassReal},
		{"BLOB", ClassOther},
		{"DATETIME", ClassOther},
		{"NUMERIC", ClassOther},
		{"", ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeType(tt.declared))
		})
	}
}

func TestResolvePrimaryKey(t *testing.T) {
	tests := []struct {
		name     string
		cols     []Column
		expected PrimaryKeySpec
	}{
		{
			name: "single pk column",
			cols: []Column{
				{Name: "id", PKOrdinal: 1},
				{Name: "body"},
			},
			expected: PrimaryKeySpec{Kind: PKSingle, Columns: []string{"id"}},
		},
		{
			name: "composite pk ordered by key position not table order",
			cols: []Column{
				{Name: "b", PKOrdinal: 2},
				{Name: "x"},
				{Name: "a", PKOrdinal: 1},
			},
			expected: PrimaryKeySpec{Kind: PKComposite, Columns: []string{"a", "b"}},
		},
		{
			name: "no pk falls back to rowid",
			cols: []Column{
				{Name: "x"},
				{Name: "y"},
			},
			expected: PrimaryKeySpec{Kind: PKRowID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolvePrimaryKey(tt.cols))
		})
	}
}

func TestTableColumnNames(t *testing.T) {
	tbl := Table{Columns: []Column{{Name: "id"}, {Name: "body"}, {Name: "sent_at"}}}
	assert.Equal(t, []string{"id", "body", "sent_at"}, tbl.ColumnNames())
}

func TestForDriver(t *testing.T) {
	d, err := ForDriver("sqlite")
	assert.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = ForDriver("mysql")
	assert.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = ForDriver("oracle")
	assert.Error(t, err)
}
