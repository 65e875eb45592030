package extractor

import (
	"context"
	"fmt"

	"github.com/dfirlab/goevidence/internal/detect"
)

// streamColumn streams the non-null cells of one column together with the
// row identity expression and invokes fn for each row. The identity is
// always rendered as text so composite keys survive unchanged.
func (e *Extractor) streamColumn(ctx context.Context, table, ridExpr, column string, limit int, fn func(rid string, v detect.Value)) error {
	qtable := e.dialect.Quote(table)
	qcol := e.dialect.Quote(column)

	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s IS NOT NULL", ridExpr, qcol, qtable, qcol)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to stream column: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rid, val any
		if err := rows.Scan(&rid, &val); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		fn(detect.FormatValue(rid), detect.NewValue(val))
	}
	return rows.Err()
}

// streamPair streams rows where both link columns are non-null.
func (e *Extractor) streamPair(ctx context.Context, table, ridExpr, source, dest string, limit int, fn func(rid string, src, dst detect.Value)) error {
	qtable := e.dialect.Quote(table)
	qsrc := e.dialect.Quote(source)
	qdst := e.dialect.Quote(dest)

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL",
		ridExpr, qsrc, qdst, qtable, qsrc, qdst)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to stream column pair: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rid, src, dst any
		if err := rows.Scan(&rid, &src, &dst); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		fn(detect.FormatValue(rid), detect.NewValue(src), detect.NewValue(dst))
	}
	return rows.Err()
}
