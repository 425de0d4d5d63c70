package source

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"cellstats/internal/errors"
)

// XLSXSource reads the handset dataset from an Excel workbook. Spreadsheet
// exports of the dataset often carry title rows above the real header, so
// the header row is located by content rather than assumed to be first.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource creates an Excel row source. When sheet is empty the source
// scans every sheet for one that carries the dataset header.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// ReadAll implements RowSource.
func (s *XLSXSource) ReadAll(ctx context.Context) ([]Record, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.NewInputError("failed to open workbook", err).WithContext("path", s.path)
	}
	defer f.Close()

	rows, sheetName, err := s.findDataSheet(f)
	if err != nil {
		return nil, err
	}

	headerRow := findHeaderRow(rows)
	if headerRow == -1 {
		return nil, errors.NewInputError("could not find dataset header row", nil).
			WithContext("path", s.path).
			WithContext("sheet", sheetName)
	}

	slog.Info("found dataset sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("header_row", headerRow),
		slog.Int("total_rows", len(rows)))

	headers := rows[headerRow]
	var records []Record
	for i := headerRow + 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isEmptyRow(rows[i]) {
			continue
		}
		records = append(records, buildRecord(headers, rows[i]))
	}

	return records, nil
}

// findDataSheet returns the rows of the configured sheet, or of the first
// sheet whose content looks like the handset dataset.
func (s *XLSXSource) findDataSheet(f *excelize.File) ([][]string, string, error) {
	if s.sheet != "" {
		rows, err := f.GetRows(s.sheet)
		if err != nil {
			return nil, "", errors.NewInputError("failed to read configured sheet", err).
				WithContext("sheet", s.sheet)
		}
		return rows, s.sheet, nil
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if findHeaderRow(rows) != -1 {
			return rows, name, nil
		}
	}

	return nil, "", errors.NewInputError("could not find dataset sheet in workbook", nil).
		WithContext("path", s.path)
}

// findHeaderRow locates the row carrying the dataset column headers by
// looking for the identity columns, which every export of the dataset has.
func findHeaderRow(rows [][]string) int {
	// Headers appear within the first few rows when present at all.
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		rowText := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(rowText, "oem") && strings.Contains(rowText, "model") {
			return i
		}
	}
	return -1
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
