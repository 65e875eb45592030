package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile  string
	logLevel string
	logFmt   string
	entities string
	limit    int
	maxPairs int
)

var rootCmd = &cobra.Command{
	Use:   "goevidence",
	Short: "Forensic Evidence Extractor for Relational Databases",
	Long: `A CLI tool that scans relational database files and extracts evidence
records (identifiers, timestamps, relational links), each tagged with
exact provenance (table, column, row identity).

Features:
  - Identifier detection: emails, phone numbers, UUIDs, IPv4 addresses, URLs
  - Temporal detection: Unix epochs (seconds/milliseconds) and ISO-8601 text
  - Relational link discovery over id-like column pairs
  - Deterministic, deduplicated output suitable as scoring ground truth`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "goevidence.yaml",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFmt, "log-format", "",
		"Override log format (json, text)")

	// Extraction overrides
	rootCmd.PersistentFlags().StringVar(&entities, "entities", "",
		"Entity classes to extract: identifier,temporal,relational or 'all'")
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 0,
		"Per-column scan limit (0 = unlimited)")
	rootCmd.PersistentFlags().IntVar(&maxPairs, "max-pairs", 0,
		"Override relational pair budget per table")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel string
	LogFmt   string
	Entities string
	Limit    int
	MaxPairs int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel: logLevel,
		LogFmt:   logFmt,
		Entities: entities,
		Limit:    limit,
		MaxPairs: maxPairs,
	}
}
