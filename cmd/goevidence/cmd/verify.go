package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dfirlab/goevidence/internal/database"
	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/report"
	"github.com/dfirlab/goevidence/internal/schema"
	"github.com/dfirlab/goevidence/internal/verifier"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <database> <records-file>",
	Short: "Verify that every record is backed by the database",
	Long: `Verify re-queries the cell each evidence record claims to come from
and checks the recorded value is genuinely derivable from it. A record
set that passes is safe to use as a scoring baseline: nothing in it was
synthesized.

Only JSON record files are verifiable; CSV output is for downstream
consumption.

Example:
  goevidence verify evidence/phone.db phone.ground_truth.json`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Source.Path = args[0]
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	records, err := evidence.ReadFile(args[1])
	if err != nil {
		return err
	}

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

	v, err := verifier.New(handle.DB, dialect, detectorConfig(cfg), log.WithDatabase(handle.Name))
	if err != nil {
		return err
	}

	stats, err := v.Verify(ctx, records)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	report.Verification(os.Stdout, handle.Name, stats)
	if !stats.Passed() {
		return fmt.Errorf("%d of %d records failed verification", stats.RecordsFailed, stats.RecordsChecked)
	}
	return nil
}
