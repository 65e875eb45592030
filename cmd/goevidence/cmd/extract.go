package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dfirlab/goevidence/internal/database"
	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/extractor"
	"github.com/dfirlab/goevidence/internal/report"
	"github.com/dfirlab/goevidence/internal/schema"
)

var (
	extractOut    string
	extractFormat string
	extractDriver string
	extractDSN    string
)

var extractCmd = &cobra.Command{
	Use:   "extract [database]",
	Short: "Extract evidence records from a single database",
	Long: `Extract scans every user table of the database, runs the configured
detector families over the streamed cells, and emits the deduplicated
evidence record set.

Records go to --out when given, otherwise to stdout. The run summary
always goes to the other stream, so piped output stays machine-readable.

Example:
  goevidence extract evidence/phone.db --out phone.ground_truth.json
  goevidence extract evidence/phone.db --entities identifier,temporal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "",
		"Output file path (.json or .csv); stdout when empty")
	extractCmd.Flags().StringVar(&extractFormat, "format", "",
		"Output format (json, csv); inferred from --out extension when empty")
	extractCmd.Flags().StringVar(&extractDriver, "driver", "",
		"Database driver (sqlite, mysql)")
	extractCmd.Flags().StringVar(&extractDSN, "dsn", "",
		"MySQL DSN (overrides config)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cfg.Source.Path = args[0]
	}
	if extractDriver != "" {
		cfg.Source.Driver = extractDriver
	}
	if extractDSN != "" {
		cfg.Source.DSN = extractDSN
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := database.SetupSignalHandler()

	handle, err := database.Open(ctx, &cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	dialect, err := schema.ForDriver(handle.Driver)
	if err != nil {
		return err
	}

	ex, err := extractor.New(handle.DB, dialect, detectorConfig(cfg), log.WithDatabase(handle.Name))
	if err != nil {
		return err
	}

	result, err := ex.Run(ctx, buildRequest(cfg))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	format := resolveFormat(cfg.Output.Format, extractFormat, extractOut)
	if extractOut == "" {
		if err := writeStdout(format, result.Records); err != nil {
			return err
		}
		report.Extraction(os.Stderr, handle.Name, result)
		return nil
	}

	if err := evidence.WriteFile(extractOut, format, result.Records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Infow("Wrote records", "path", extractOut, "format", format, "records", len(result.Records))
	report.Extraction(os.Stdout, handle.Name, result)
	return nil
}

// resolveFormat picks the output format: explicit flag, then the output
// file extension, then the configured default.
func resolveFormat(configured, flag, outPath string) string {
	if flag != "" {
		return flag
	}
	if outPath != "" {
		return evidence.FormatForPath(outPath)
	}
	if configured != "" {
		return configured
	}
	return "json"
}

func writeStdout(format string, records []evidence.Record) error {
	if format == "csv" {
		return evidence.WriteCSV(os.Stdout, records)
	}
	return evidence.WriteJSON(os.Stdout, records)
}
