package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfirlab/goevidence/internal/database"
	"github.com/dfirlab/goevidence/internal/detect"
	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/extractor"
	"github.com/dfirlab/goevidence/internal/logger"
	"github.com/dfirlab/goevidence/internal/report"
	"github.com/dfirlab/goevidence/internal/schema"
)

var (
	batchOutDir string
	batchFormat string
)

// dbExtensions are the file extensions treated as SQLite databases.
var dbExtensions = map[string]bool{
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

var batchCmd = &cobra.Command{
	Use:   "batch <path>",
	Short: "Extract evidence from every database under a directory",
	Long: `Batch walks a directory tree, extracts evidence from every SQLite
database file found (.db, .sqlite, .sqlite3), and writes one record file
per database into the output directory. A failing database is reported
and skipped; the batch continues.

Output files are named <relative__path>.ground_truth.<format>, with path
separators flattened to "__".

Example:
  goevidence batch ./seized_images --outdir gt_out --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "outdir", "",
		"Directory for per-database record files (default from config)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "",
		"Output format per database (json, csv)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	root := args[0]
	outDir := batchOutDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	format := batchFormat
	if format == "" {
		format = cfg.Output.Format
	}

	paths, err := findDatabases(root)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no databases found under %s", root)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Infow("Starting batch extraction",
		"databases", len(paths),
		"outdir", outDir,
		"format", format,
	)

	ctx := database.SetupSignalHandler()
	req := buildRequest(cfg)
	dcfg := detectorConfig(cfg)

	succeeded, failed, totalRecords := 0, 0, 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch interrupted: %w", err)
		}

		outPath := filepath.Join(outDir, outputName(root, path, format))
		n, err := extractOne(ctx, path, outPath, format, req, dcfg, log)
		if err != nil {
			log.Errorw("Database failed", "database", path, "error", err)
			failed++
			continue
		}
		log.Infow("Database done", "database", path, "out", outPath, "records", n)
		succeeded++
		totalRecords += n
	}

	report.Batch(os.Stdout, len(paths), succeeded, failed, totalRecords)
	if failed > 0 {
		return fmt.Errorf("batch completed with %d failed database(s)", failed)
	}
	return nil
}

// findDatabases collects database files under root. A root that is itself
// a database file yields just that file.
func findDatabases(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input path: %w", err)
	}
	if !info.IsDir() {
		if !dbExtensions[strings.ToLower(filepath.Ext(root))] {
			return nil, fmt.Errorf("%s is not a recognized database file", root)
		}
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && dbExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return paths, nil
}

// outputName flattens the database's path relative to the walk root into
// a single file name.
func outputName(root, path, format string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		rel = filepath.Base(path)
	}
	flat := strings.ReplaceAll(rel, string(filepath.Separator), "__")
	return flat + ".ground_truth." + format
}

func extractOne(ctx context.Context, dbPath, outPath, format string, req extractor.Request, dcfg *detect.Config, log *logger.Logger) (int, error) {
	handle, err := database.OpenSQLite(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer handle.Close()

	ex, err := extractor.New(handle.DB, schema.SQLiteDialect{}, dcfg, log.WithDatabase(dbPath))
	if err != nil {
		return 0, err
	}

	result, err := ex.Run(ctx, req)
	if err != nil {
		return 0, err
	}

	if err := evidence.WriteFile(outPath, format, result.Records); err != nil {
		return 0, err
	}
	return len(result.Records), nil
}
