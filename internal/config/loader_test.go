package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goevidence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
source:
  driver: sqlite
  path: /evidence/msgstore.db
extraction:
  entities: [identifier, temporal]
  limit: 100
output:
  format: csv
tuning:
  max_relation_pairs: 3
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, "/evidence/msgstore.db", cfg.Source.Path)
	assert.Equal(t, []string{"identifier", "temporal"}, cfg.Extraction.Entities)
	assert.Equal(t, 100, cfg.Extraction.Limit)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 3, cfg.Tuning.MaxRelationPairs)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultsPreserved(t *testing.T) {
	// A sparse file falls back to defaults for everything it omits.
	path := writeConfigFile(t, `
source:
  path: case.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Source.Driver)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Tuning.MaxRelationPairs)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("CASE_DIR", "/cases/2024-031")

	path := writeConfigFile(t, `
source:
  path: ${CASE_DIR}/msgstore.db
output:
  dir: $CASE_DIR/gt
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/cases/2024-031/msgstore.db", cfg.Source.Path)
	assert.Equal(t, "/cases/2024-031/gt", cfg.Output.Dir)
}

func TestLoad_EnvSubstitutionMissingVarKept(t *testing.T) {
	path := writeConfigFile(t, `
source:
  path: ${DEFINITELY_NOT_SET_VAR}/a.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "${DEFINITELY_NOT_SET_VAR}/a.db", cfg.Source.Path)
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		path := writeConfigFile(t, "output:\n  format: csv\n")
		cfg, err := LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, "csv", cfg.Output.Format)
	})

	t.Run("existing but malformed file is an error", func(t *testing.T) {
		path := writeConfigFile(t, "{not yaml::")
		_, err := LoadOrDefault(path)
		assert.Error(t, err)
	})
}

func TestParseEntities(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "all keyword",
			input:    "all",
			expected: []string{"identifier", "temporal", "relational"},
		},
		{
			name:     "empty means all",
			input:    "",
			expected: []string{"identifier", "temporal", "relational"},
		},
		{
			name:     "single class",
			input:    "temporal",
			expected: []string{"temporal"},
		},
		{
			name:     "comma list with spaces and case",
			input:    " Identifier, RELATIONAL ",
			expected: []string{"identifier", "relational"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseEntities(tt.input))
		})
	}
}
