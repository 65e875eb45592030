// Package config provides configuration structures and loading for goevidence.
package config

// Entity class names accepted in extraction.entities.
const (
	EntityIdentifier = "identifier"
	EntityTemporal   = "temporal"
	EntityRelational = "relational"
)

// Config represents the complete application configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source" mapstructure:"source"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Tuning     TuningConfig     `yaml:"tuning" mapstructure:"tuning"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig describes how to reach the database under examination.
// For sqlite the Path is a database file; for mysql the DSN carries the
// full connection string (the file path arguments on the CLI override Path).
type SourceConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // sqlite or mysql
	Path   string `yaml:"path" mapstructure:"path"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// ExtractionConfig selects which evidence classes to extract and how much
// of each column to scan.
type ExtractionConfig struct {
	Entities []string `yaml:"entities" mapstructure:"entities"`
	Limit    int      `yaml:"limit" mapstructure:"limit"` // per-column row cap, 0 = unlimited
}

// OutputConfig controls where and in which format records are written.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // json or csv
	Dir    string `yaml:"dir" mapstructure:"dir"`       // batch mode output directory
}

// TuningConfig holds heuristic knobs for the detectors.
type TuningConfig struct {
	// MaxRelationPairs bounds how many scored column pairs per table the
	// relational detector keeps. The historical default of 2 is arbitrary
	// and kept tunable on purpose.
	MaxRelationPairs int `yaml:"max_relation_pairs" mapstructure:"max_relation_pairs"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Driver: "sqlite",
		},
		Extraction: ExtractionConfig{
			Entities: []string{EntityIdentifier, EntityTemporal, EntityRelational},
			Limit:    0,
		},
		Output: OutputConfig{
			Format: "json",
			Dir:    "gt_out",
		},
		Tuning: TuningConfig{
			MaxRelationPairs: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// HasEntity reports whether the given entity class is selected.
func (ec *ExtractionConfig) HasEntity(name string) bool {
	for _, e := range ec.Entities {
		if e == name {
			return true
		}
	}
	return false
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, entities []string, limit, maxPairs int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if len(entities) > 0 {
		c.Extraction.Entities = entities
	}
	if limit > 0 {
		c.Extraction.Limit = limit
	}
	if maxPairs > 0 {
		c.Tuning.MaxRelationPairs = maxPairs
	}
}
