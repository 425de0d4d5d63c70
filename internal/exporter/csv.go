// Package exporter writes the aggregation report to CSV and JSON files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cellstats/internal/errors"
	"cellstats/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options. A header row is
// required; every report file carries one.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	if len(options.Headers) == 0 {
		return errors.NewValidationError("csv export requires a header row")
	}

	w.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return errors.NewStorageError("failed to create CSV file", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(options.Headers); err != nil {
		return errors.NewStorageError("failed to write CSV header", err)
	}

	for _, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV writer", err)
	}

	return nil
}

// WriteReportSummary writes the scalar aggregate results as metric/value rows.
func (w *CSVWriter) WriteReportSummary(filePath string, report domain.Report) error {
	records := [][]string{
		{"total_rows", fmt.Sprintf("%d", report.TotalRows)},
		{"skipped_rows", fmt.Sprintf("%d", report.SkippedRows)},
		{"single_sensor_count", fmt.Sprintf("%d", report.SingleSensorCount)},
		{"year_mismatch_count", fmt.Sprintf("%d", len(report.YearMismatches))},
	}

	if report.TopOEMByWeight != nil {
		records = append(records,
			[]string{"top_oem_by_weight", report.TopOEMByWeight.OEM},
			[]string{"top_oem_average_grams", fmt.Sprintf("%.2f", report.TopOEMByWeight.Average)},
		)
	}
	if report.ModeYear != nil {
		records = append(records,
			[]string{"mode_year", fmt.Sprintf("%d", report.ModeYear.Year)},
			[]string{"mode_year_count", fmt.Sprintf("%d", report.ModeYear.Count)},
		)
	}
	if report.MostCommonOEM != "" {
		records = append(records, []string{"most_common_oem", report.MostCommonOEM})
	}
	if report.MostCommonDisplaySize != nil {
		records = append(records, []string{"most_common_display_size", fmt.Sprintf("%.2f", *report.MostCommonDisplaySize)})
	}
	if report.MeanBodyWeight != nil {
		records = append(records, []string{"mean_body_weight", fmt.Sprintf("%.2f", *report.MeanBodyWeight)})
	}
	if report.MedianBodyWeight != nil {
		records = append(records, []string{"median_body_weight", fmt.Sprintf("%.2f", *report.MedianBodyWeight)})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers: []string{"Metric", "Value"},
		Records: records,
	})
}

// WriteMismatches writes the ordered year-mismatch pairs.
func (w *CSVWriter) WriteMismatches(filePath string, pairs []domain.MismatchPair) error {
	records := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		records = append(records, []string{
			pair.OEM,
			pair.Model,
			fmt.Sprintf("%d", pair.AnnouncedYear),
			fmt.Sprintf("%d", pair.ReleaseYear),
		})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers: []string{"OEM", "Model", "AnnouncedYear", "ReleaseYear"},
		Records: records,
	})
}

// WriteHistogram writes the post-1999 release-year histogram.
func (w *CSVWriter) WriteHistogram(filePath string, buckets []domain.YearCount) error {
	records := make([][]string, 0, len(buckets))
	for _, bucket := range buckets {
		records = append(records, []string{
			fmt.Sprintf("%d", bucket.Year),
			fmt.Sprintf("%d", bucket.Count),
		})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers: []string{"Year", "Count"},
		Records: records,
	})
}
