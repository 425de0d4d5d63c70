package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cellstats/internal/errors"
	"cellstats/pkg/contracts"
	"cellstats/pkg/contracts/domain"
)

// JSONWriter writes the full report as a structured JSON document.
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON writer instance
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger}
}

// reportEnvelope wraps the report with output-format metadata.
type reportEnvelope struct {
	Report      domain.Report `json:"report"`
	Format      string        `json:"format"`
	GeneratedAt string        `json:"generated_at"`
}

// WriteReport writes the report with metadata to the given path.
func (w *JSONWriter) WriteReport(filePath string, report domain.Report) error {
	w.logger.Info("writing JSON report", slog.String("file_path", filePath))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return errors.NewStorageError("failed to create JSON file", err)
	}
	defer file.Close()

	envelope := reportEnvelope{
		Report:      report,
		Format:      "cellstats_report_" + contracts.DataFormatVersion,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return errors.NewStorageError("failed to encode report to JSON", err)
	}

	return nil
}
