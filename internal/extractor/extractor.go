// Package extractor provides the core evidence extraction pipeline: it
// introspects the schema, streams non-null cells per column, runs the
// detector families over them, and returns the deduplicated record set.
package extractor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dfirlab/goevidence/internal/detect"
	"github.com/dfirlab/goevidence/internal/evidence"
	"github.com/dfirlab/goevidence/internal/logger"
	"github.com/dfirlab/goevidence/internal/schema"
)

// Request selects which entity classes to extract and bounds the scan.
type Request struct {
	Identifier bool
	Temporal   bool
	Relational bool

	// Limit caps the number of rows streamed per column. Zero means
	// unlimited.
	Limit int
}

// Skip records a table or column excluded from extraction and why.
type Skip struct {
	Table  string
	Column string // empty when the whole table was skipped
	Reason string
}

// Result contains the extracted records and run statistics.
type Result struct {
	Records       []evidence.Record
	Counts        map[evidence.Class]int
	Skipped       []Skip
	TablesScanned int
	StartedAt     time.Time
	CompletedAt   time.Time
	Duration      time.Duration
}

// Extractor coordinates one extraction run over a single open database.
type Extractor struct {
	db      *sql.DB
	dialect schema.Dialect
	cfg     *detect.Config
	logger  *logger.Logger
}

// New creates an extractor for the given database handle and dialect.
func New(db *sql.DB, dialect schema.Dialect, cfg *detect.Config, log *logger.Logger) (*Extractor, error) {
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
	return &Extractor{db: db, dialect: dialect, cfg: cfg, logger: log}, nil
}

// Run executes the extraction. Tables are processed in the dialect's
// stable listing order, and within each table the identifier, temporal,
// and relational passes run in that fixed order, so the record stream is
// reproducible for a given database. Unreadable tables and failing
// column scans are skipped and reported, never fatal.
func (e *Extractor) Run(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &Result{StartedAt: time.Now()}

	tables, introSkipped, err := schema.Introspect(ctx, e.db, e.dialect)
	if err != nil {
		return nil, fmt.Errorf("schema introspection failed: %w", err)
	}
	for _, s := range introSkipped {
		e.logger.Warnw("Skipping table", "table", s.Table, "reason", s.Reason)
		result.Skipped = append(result.Skipped, Skip{Table: s.Table, Reason: s.Reason})
	}

	e.logger.Infow("Starting extraction",
		"tables", len(tables),
		"identifier", req.Identifier,
		"temporal", req.Temporal,
		"relational", req.Relational,
		"limit", req.Limit,
	)

	var records []evidence.Record
	for _, t := range tables {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ridExpr, err := e.dialect.IdentityExpr(t.PK)
		if err != nil {
			e.logger.Warnw("Skipping table", "table", t.Name, "reason", err.Error())
			result.Skipped = append(result.Skipped, Skip{Table: t.Name, Reason: err.Error()})
			continue
		}

		result.TablesScanned++
		recs := e.scanTable(ctx, req, t, ridExpr, result)
		records = append(records, recs...)
	}

	result.Records = evidence.Dedupe(records)
	result.Counts = evidence.CountByClass(result.Records)
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	e.logger.Infow("Extraction completed",
		"records", len(result.Records),
		"tables_scanned", result.TablesScanned,
		"skipped", len(result.Skipped),
		"duration", result.Duration,
	)

	return result, nil
}

// scanTable runs the enabled detector passes over one table. Pass order
// is fixed: identifiers, then temporals, then relations.
func (e *Extractor) scanTable(ctx context.Context, req Request, t schema.Table, ridExpr string, result *Result) []evidence.Record {
	log := e.logger.WithTable(t.Name)
	log.Debugw("Scanning table", "columns", len(t.Columns), "pk_kind", string(t.PK.Kind))

	cols := make([]detect.Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = detect.Column{Name: c.Name, Class: c.Class, Hints: e.cfg.HintsFor(c.Name)}
	}

	var records []evidence.Record
	if req.Identifier {
		records = append(records, e.identifierPass(ctx, t.Name, ridExpr, cols, req.Limit, result)...)
	}
	if req.Temporal {
		records = append(records, e.temporalPass(ctx, t.Name, ridExpr, cols, req.Limit, result)...)
	}
	if req.Relational {
		records = append(records, e.relationalPass(ctx, t.Name, ridExpr, t.ColumnNames(), req.Limit, result)...)
	}
	return records
}

// identifierPass streams each eligible column once and runs every
// identifier detector over each cell, in the detectors' fixed order.
func (e *Extractor) identifierPass(ctx context.Context, table, ridExpr string, cols []detect.Column, limit int, result *Result) []evidence.Record {
	detectors := detect.IdentifierDetectors(e.cfg)

	var records []evidence.Record
	for _, col := range cols {
		var wanting []detect.ValueDetector
		for _, d := range detectors {
			if d.Wants(col) {
				wanting = append(wanting, d)
			}
		}
		if len(wanting) == 0 {
			continue
		}

		err := e.streamColumn(ctx, table, ridExpr, col.Name, limit, func(rid string, v detect.Value) {
			for _, d := range wanting {
				for _, m := range d.Match(col, v) {
					records = append(records, evidence.Record{
						EntityType: evidence.Identifier,
						Subtype:    m.Subtype,
						Value:      m.Value,
						Raw:        m.Raw,
						Table:      table,
						RowID:      rid,
						Column:     col.Name,
					})
				}
			}
		})
		if err != nil {
			e.skipColumn(result, table, col.Name, err)
		}
	}
	return records
}

// temporalPass streams each eligible column once. Epoch findings are
// emitted as they appear; ISO findings are buffered per column and
// appended after the column completes, so each column reports all of its
// epoch records before any of its textual ones.
func (e *Extractor) temporalPass(ctx context.Context, table, ridExpr string, cols []detect.Column, limit int, result *Result) []evidence.Record {
	detectors := detect.TemporalDetectors(e.cfg)
	epoch, iso := detectors[0], detectors[1]

	var records []evidence.Record
	for _, col := range cols {
		wantEpoch := epoch.Wants(col)
		wantISO := iso.Wants(col)
		if !wantEpoch && !wantISO {
			continue
		}

		var isoRecords []evidence.Record
		err := e.streamColumn(ctx, table, ridExpr, col.Name, limit, func(rid string, v detect.Value) {
			if wantEpoch {
				for _, m := range epoch.Match(col, v) {
					records = append(records, evidence.Record{
						EntityType: evidence.Temporal,
						Subtype:    m.Subtype,
						Value:      m.Value,
						Raw:        m.Raw,
						Table:      table,
						RowID:      rid,
						Column:     col.Name,
					})
				}
			}
			if wantISO {
				for _, m := range iso.Match(col, v) {
					isoRecords = append(isoRecords, evidence.Record{
						EntityType: evidence.Temporal,
						Subtype:    m.Subtype,
						Value:      m.Value,
						Table:      table,
						RowID:      rid,
						Column:     col.Name,
					})
				}
			}
		})
		if err != nil {
			e.skipColumn(result, table, col.Name, err)
			continue
		}
		records = append(records, isoRecords...)
	}
	return records
}

// relationalPass emits one record per row for each scored column pair,
// with the value rendered as "<source>-><dest>".
func (e *Extractor) relationalPass(ctx context.Context, table, ridExpr string, names []string, limit int, result *Result) []evidence.Record {
	pairs := e.cfg.RelationPairs(names)
	if len(pairs) == 0 {
		return nil
	}

	var records []evidence.Record
	for _, p := range pairs {
		err := e.streamPair(ctx, table, ridExpr, p.Source, p.Dest, limit, func(rid string, src, dst detect.Value) {
			records = append(records, evidence.Record{
				EntityType: evidence.Relational,
				Subtype:    p.Subtype(),
				Value:      src.Str + "->" + dst.Str,
				Table:      table,
				RowID:      rid,
				Column:     p.ColumnRef(),
			})
		})
		if err != nil {
			e.skipColumn(result, table, p.ColumnRef(), err)
		}
	}
	return records
}

func (e *Extractor) skipColumn(result *Result, table, column string, err error) {
	e.logger.Warnw("Skipping column", "table", table, "column", column, "reason", err.Error())
	result.Skipped = append(result.Skipped, Skip{Table: table, Column: column, Reason: err.Error()})
}
