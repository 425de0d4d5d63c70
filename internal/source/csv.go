package source

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"

	"cellstats/internal/errors"
)

// CSVSource reads the handset dataset from a CSV file. The first row is
// treated as the header and maps cells to column names for every data row.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSV row source for the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// ReadAll implements RowSource.
func (s *CSVSource) ReadAll(ctx context.Context) ([]Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.NewInputError("failed to open dataset", err).WithContext("path", s.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows with a stray comma inside a quoted field can disagree with the
	// header width; let the normalizer decide what to do with them.
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.NewInputError("failed to read CSV header", err).WithContext("path", s.path)
	}

	slog.Debug("parsed CSV header",
		slog.String("path", s.path),
		slog.Int("column_count", len(headers)))

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("failed to decode CSV row", err).
				WithContext("path", s.path).
				WithContext("row", len(records)+2)
		}

		records = append(records, buildRecord(headers, row))
	}

	slog.Info("read dataset",
		slog.String("path", s.path),
		slog.Int("row_count", len(records)))

	return records, nil
}
