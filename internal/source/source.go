// Package source implements the row sources for the cellstats pipeline.
// A row source yields the raw dataset rows as column-name to raw-text
// mappings; it performs no field interpretation beyond locating the header.
package source

import (
	"context"
	"fmt"
	"strings"

	"cellstats/internal/config"
	"cellstats/internal/errors"
)

// Record is one raw dataset row keyed by normalized column header.
// Values are unmodified cell text and may be empty or placeholder strings.
type Record map[string]string

// Get returns the raw value for a column, or "" when the column is missing.
func (r Record) Get(column string) string {
	return r[normalizeHeader(column)]
}

// RowSource produces the finite, ordered sequence of raw records.
type RowSource interface {
	// ReadAll reads every data row. A file that cannot be opened or
	// decoded at all yields a fatal input error; individual odd rows are
	// returned as-is for the normalizer to deal with.
	ReadAll(ctx context.Context) ([]Record, error)
}

// Open selects a row source implementation based on the input format.
func Open(cfg config.InputConfig) (RowSource, error) {
	switch strings.ToLower(cfg.Format) {
	case "csv":
		return NewCSVSource(cfg.Path), nil
	case "xlsx":
		return NewXLSXSource(cfg.Path, cfg.Sheet), nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unsupported input format %q", cfg.Format), nil)
	}
}

// normalizeHeader canonicalizes a column header for map lookup.
func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// buildRecord zips a header row and a data row into a Record. Short rows
// leave trailing columns absent; extra cells without a header are dropped.
func buildRecord(headers []string, row []string) Record {
	record := make(Record, len(headers))
	for i, header := range headers {
		key := normalizeHeader(header)
		if key == "" {
			continue
		}
		if i < len(row) {
			record[key] = row[i]
		} else {
			record[key] = ""
		}
	}
	return record
}
