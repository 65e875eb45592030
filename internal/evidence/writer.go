package evidence

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FormatForPath picks the output format from a file extension,
// defaulting to JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	default:
		return "json"
	}
}

// WriteJSON serializes records as an indented JSON array. An empty record
// set serializes as [] rather than null.
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// WriteCSV serializes records as CSV. The header is the sorted union of
// field names observed across all records, so the optional raw column
// appears only when at least one record carries it. An empty record set
// yields an empty file.
func WriteCSV(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	fieldSet := map[string]bool{
		"entity_type": true,
		"subtype":     true,
		"value":       true,
		"table":       true,
		"rowid":       true,
		"column":      true,
	}
	for _, r := range records {
		if r.Raw != "" {
			fieldSet["raw"] = true
			break
		}
	}

	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		byName := map[string]string{
			"entity_type": string(r.EntityType),
			"subtype":     r.Subtype,
			"value":       r.Value,
			"raw":         r.Raw,
			"table":       r.Table,
			"rowid":       r.RowID,
			"column":      r.Column,
		}
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = byName[f]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path in the given format ("json" or "csv").
func WriteFile(path, format string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch format {
	case "csv":
		err = WriteCSV(f, records)
	case "json", "":
		err = WriteJSON(f, records)
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// ReadFile loads a previously written JSON record file. Used by the
// provenance verifier; CSV output is for downstream consumption only.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse record file: %w", err)
	}
	return records, nil
}
