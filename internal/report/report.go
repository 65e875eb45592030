// Package report renders human-readable run summaries for the CLI.
// Record output is machine-readable; everything here is operator-facing.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/extractor"
	"github.com/dfirlab/goevidence/internal/verifier"
)

var (
	headerStyle = color.New(color.FgCyan, color.OpBold)
	passStyle   = color.New(color.FgGreen, color.OpBold)
	failStyle   = color.New(color.FgRed, color.OpBold)
)

// classOrder fixes the display order of entity classes.
var classOrder = []evidence.Class{evidence.Identifier, evidence.Temporal, evidence.Relational}

// Extraction writes the post-run summary for one database.
func Extraction(w io.Writer, database string, result *extractor.Result) {
	fmt.Fprintf(w, "\n%s\n", headerStyle.Sprint("=== Extraction Complete ==="))

	labelWidth := 0
	rows := summaryRows(result)
	for _, r := range rows {
		if lw := runewidth.StringWidth(r.label); lw > labelWidth {
			labelWidth = lw
		}
	}

	fmt.Fprintf(w, "%s %s\n", pad("Database:", labelWidth+1), database)
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", pad(r.label+":", labelWidth+1), r.value)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\n%s\n", headerStyle.Sprint("Skipped:"))
		for _, s := range result.Skipped {
			target := s.Table
			if s.Column != "" {
				target = s.Table + "." + s.Column
			}
			fmt.Fprintf(w, "  - %s: %s\n", target, s.Reason)
		}
	}
}

type row struct {
	label string
	value string
}

func summaryRows(result *extractor.Result) []row {
	rows := []row{
		{"Records", fmt.Sprintf("%d", len(result.Records))},
	}
	for _, c := range classOrder {
		rows = append(rows, row{string(c), fmt.Sprintf("%d", result.Counts[c])})
	}
	rows = append(rows,
		row{"Tables scanned", fmt.Sprintf("%d", result.TablesScanned)},
		row{"Duration", result.Duration.String()},
	)
	return rows
}

// Batch writes the roll-up line after a directory run.
func Batch(w io.Writer, databases, succeeded, failed, records int) {
	fmt.Fprintf(w, "\n%s\n", headerStyle.Sprint("=== Batch Complete ==="))
	fmt.Fprintf(w, "Databases: %d\n", databases)
	fmt.Fprintf(w, "Succeeded: %s\n", passStyle.Sprintf("%d", succeeded))
	if failed > 0 {
		fmt.Fprintf(w, "Failed:    %s\n", failStyle.Sprintf("%d", failed))
	} else {
		fmt.Fprintf(w, "Failed:    0\n")
	}
	fmt.Fprintf(w, "Records:   %d\n", records)
}

// Verification writes the verify summary, listing mismatches grouped by
// table for readability.
func Verification(w io.Writer, database string, stats *verifier.VerifyStats) {
	fmt.Fprintf(w, "\n%s\n", headerStyle.Sprint("=== Verification Complete ==="))
	fmt.Fprintf(w, "Database: %s\n", database)
	fmt.Fprintf(w, "Checked:  %d\n", stats.RecordsChecked)
	fmt.Fprintf(w, "Passed:   %s\n", passStyle.Sprintf("%d", stats.RecordsPassed))

	if stats.Passed() {
		fmt.Fprintf(w, "Failed:   0\n")
		return
	}

	fmt.Fprintf(w, "Failed:   %s\n\n", failStyle.Sprintf("%d", stats.RecordsFailed))

	byTable := make(map[string][]verifier.Mismatch)
	var tables []string
	for _, m := range stats.Mismatches {
		if _, seen := byTable[m.Record.Table]; !seen {
			tables = append(tables, m.Record.Table)
		}
		byTable[m.Record.Table] = append(byTable[m.Record.Table], m)
	}
	sort.Strings(tables)

	for _, t := range tables {
		fmt.Fprintf(w, "%s\n", headerStyle.Sprint(t))
		for _, m := range byTable[t] {
			fmt.Fprintf(w, "  - %s %s (row %s): %s\n",
				m.Record.Subtype, m.Record.Value, m.Record.RowID, m.Reason)
		}
	}
}

// pad right-fills s to the given display width. Table and column names
// can carry wide runes, so padding goes by display width, not bytes.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
