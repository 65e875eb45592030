// Package verifier provides provenance verification for extracted
// evidence records: every record must be re-derivable from the live cell
// it claims to come from, never synthesized.
package verifier

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dfirlab/goevidence/internal/detect"
	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/logger"
	"github.com/dfirlab/goevidence/internal/schema"
)

// Mismatch describes one record that could not be verified.
type Mismatch struct {
	Record evidence.Record
	Reason string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	RecordsChecked int
	RecordsPassed  int
	RecordsFailed  int
	Mismatches     []Mismatch
}

// Passed reports whether every checked record verified cleanly.
func (s *VerifyStats) Passed() bool { return s.RecordsFailed == 0 }

// Verifier re-derives evidence records against the database they were
// extracted from.
type Verifier struct {
	db      *sql.DB
	dialect schema.Dialect
	cfg     *detect.Config
	logger  *logger.Logger

	tables map[string]schema.Table
}

// New creates a verifier bound to one open database.
func New(db *sql.DB, dialect schema.Dialect, cfg *detect.Config, log *logger.Logger) (*Verifier, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	if dialect == nil {
		return nil, fmt.Errorf("dialect is nil")
	}
	if cfg == nil {
		cfg = detect.DefaultConfig()
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Verifier{db: db, dialect: dialect, cfg: cfg, logger: log}, nil
}

// Verify checks every record against the database and returns the
// aggregate statistics. Individual failures never abort the run; the
// caller decides what a non-zero failure count means.
func (v *Verifier) Verify(ctx context.Context, records []evidence.Record) (*VerifyStats, error) {
	if err := v.loadSchema(ctx); err != nil {
		return nil, err
	}

	stats := &VerifyStats{}
	v.logger.Infow("Starting provenance verification", "records", len(records))

	for i := range records {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("verification interrupted: %w", err)
		}

		stats.RecordsChecked++
		if reason := v.check(ctx, records[i]); reason != "" {
			stats.RecordsFailed++
			stats.Mismatches = append(stats.Mismatches, Mismatch{Record: records[i], Reason: reason})
			v.logger.Warnw("Record failed verification",
				"table", records[i].Table,
				"column", records[i].Column,
				"rowid", records[i].RowID,
				"subtype", records[i].Subtype,
				"reason", reason,
			)
		} else {
			stats.RecordsPassed++
		}
	}

	v.logger.Infow("Verification complete",
		"checked", stats.RecordsChecked,
		"passed", stats.RecordsPassed,
		"failed", stats.RecordsFailed,
	)
	return stats, nil
}

func (v *Verifier) loadSchema(ctx context.Context) error {
	if v.tables != nil {
		return nil
	}
	tables, _, err := schema.Introspect(ctx, v.db, v.dialect)
	if err != nil {
		return fmt.Errorf("schema introspection failed: %w", err)
	}
	v.tables = make(map[string]schema.Table, len(tables))
	for _, t := range tables {
		v.tables[t.Name] = t
	}
	return nil
}

// check verifies one record and returns an empty string on success, or
// the failure reason.
func (v *Verifier) check(ctx context.Context, r evidence.Record) string {
	t, ok := v.tables[r.Table]
	if !ok {
		return fmt.Sprintf("table %q not found", r.Table)
	}

	ridExpr, err := v.dialect.IdentityExpr(t.PK)
	if err != nil {
		return fmt.Sprintf("no row identity for table %q: %v", r.Table, err)
	}

	columns := strings.Split(r.Column, ",")
	cells, err := v.fetchCells(ctx, r.Table, ridExpr, r.RowID, columns)
	if err != nil {
		return err.Error()
	}

	return v.derivable(r, cells)
}

// fetchCells loads the named columns of the row identified by rid.
func (v *Verifier) fetchCells(ctx context.Context, table, ridExpr, rid string, columns []string) ([]detect.Value, error) {
	selects := make([]string, len(columns))
	for i, c := range columns {
		selects[i] = v.dialect.Quote(c)
	}

	// Records carry the identity as text; the engine's comparison
	// coercion maps it back onto numeric keys.
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(selects, ", "), v.dialect.Quote(table), ridExpr)

	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	if err := v.db.QueryRowContext(ctx, query, rid).Scan(ptrs...); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("row %q not found", rid)
		}
		return nil, fmt.Errorf("failed to fetch row %q: %w", rid, err)
	}

	cells := make([]detect.Value, len(raw))
	for i, c := range raw {
		cells[i] = detect.NewValue(c)
	}
	return cells, nil
}

// derivable re-runs the detector logic for the record's subtype against
// the fetched cell(s) and checks the claimed value falls out of it.
func (v *Verifier) derivable(r evidence.Record, cells []detect.Value) string {
	if r.EntityType == evidence.Relational {
		if len(cells) != 2 {
			return fmt.Sprintf("relational record names %d columns, want 2", len(cells))
		}
		got := cells[0].Str + "->" + cells[1].Str
		if got != r.Value {
			return fmt.Sprintf("value mismatch: cell yields %q", got)
		}
		return ""
	}

	if len(cells) != 1 {
		return fmt.Sprintf("record names %d columns, want 1", len(cells))
	}
	cell := cells[0]

	switch r.Subtype {
	case evidence.SubtypeEmail:
		return v.containsMatch(v.cfg.Email.FindAllString(cell.Str, -1), r.Value)
	case evidence.SubtypeUUID:
		for _, m := range v.cfg.UUID.FindAllString(cell.Str, -1) {
			if strings.ToLower(m) == r.Value {
				return ""
			}
		}
		return fmt.Sprintf("uuid %q not present in cell", r.Value)
	case evidence.SubtypeIPv4:
		return v.containsMatch(v.cfg.IPv4.FindAllString(cell.Str, -1), r.Value)
	case evidence.SubtypeURL:
		return v.containsMatch(v.cfg.URL.FindAllString(cell.Str, -1), r.Value)
	case evidence.SubtypePhone:
		norm, ok := v.cfg.NormalizePhone(cell.Str)
		if !ok || norm != r.Value {
			return fmt.Sprintf("phone %q not derivable from cell", r.Value)
		}
		return ""
	case evidence.SubtypeUnixEpoch:
		candidate, ok := cell.EpochCandidate()
		if !ok {
			return "cell is not an epoch candidate"
		}
		iso, ok := v.cfg.EpochToISO(candidate)
		if !ok || iso != r.Value {
			return fmt.Sprintf("epoch %q not derivable from cell", r.Value)
		}
		if r.Raw != "" && r.Raw != cell.Str {
			return fmt.Sprintf("raw mismatch: cell holds %q", cell.Str)
		}
		return ""
	case evidence.SubtypeISO8601:
		if cell.Str != r.Value {
			return fmt.Sprintf("value mismatch: cell holds %q", cell.Str)
		}
		if !v.cfg.ISO8601.MatchString(cell.Str) {
			return "cell no longer matches the ISO-8601 shape"
		}
		return ""
	default:
		return fmt.Sprintf("unknown subtype %q", r.Subtype)
	}
}

func (v *Verifier) containsMatch(matches []string, value string) string {
	for _, m := range matches {
		if m == value {
			return ""
		}
	}
	return fmt.Sprintf("%q not present in cell", value)
}
