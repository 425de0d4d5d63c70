// Package normalize converts raw dataset records into typed Device entities.
// Every per-field extraction rule lives here; nothing downstream ever sees a
// raw placeholder string.
package normalize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"cellstats/internal/config"
	"cellstats/internal/errors"
	"cellstats/internal/source"
	"cellstats/pkg/contracts/domain"
)

// Normalizer maps raw records to Device entities using the configured
// column names. Field-level parse failures degrade to absent values; only a
// row missing its identity columns is rejected.
type Normalizer struct {
	logger   *slog.Logger
	columns  config.ColumnsConfig
	validate *validator.Validate
}

// Result carries the outcome of normalizing a record batch.
type Result struct {
	Devices     []domain.Device
	SkippedRows int
}

// New creates a Normalizer for the given column layout.
func New(logger *slog.Logger, columns config.ColumnsConfig) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger:   logger,
		columns:  columns,
		validate: validator.New(),
	}
}

// Normalize converts one raw record into a Device. A malformed row (empty
// oem or model) yields a parsing error and should be skipped.
func (n *Normalizer) Normalize(record source.Record) (domain.Device, error) {
	device := domain.Device{
		OEM:             strings.TrimSpace(record.Get(n.columns.OEM)),
		Model:           strings.TrimSpace(record.Get(n.columns.Model)),
		LaunchAnnounced: ExtractYear(record.Get(n.columns.LaunchAnnounced)),
		ReleaseYear:     ExtractYear(record.Get(n.columns.LaunchStatus)),
		BodyWeight:      ExtractDecimal(record.Get(n.columns.BodyWeight)),
		DisplaySize:     ExtractDecimal(record.Get(n.columns.DisplaySize)),
		SensorCount:     CountSensors(record.Get(n.columns.FeaturesSensors)),
	}

	if err := n.validate.Struct(&device); err != nil {
		return domain.Device{}, errors.NewParsingError("row missing identity columns", err).
			WithContext("oem", device.OEM).
			WithContext("model", device.Model)
	}

	return device, nil
}

// NormalizeAll converts a record batch into Devices, preserving input order.
// Malformed rows are warn-logged and counted, never fatal.
func (n *Normalizer) NormalizeAll(ctx context.Context, records []source.Record) Result {
	result := Result{
		Devices: make([]domain.Device, 0, len(records)),
	}

	for i, record := range records {
		device, err := n.Normalize(record)
		if err != nil {
			result.SkippedRows++
			n.logger.WarnContext(ctx, "skipping malformed row",
				slog.Int("row", i+1),
				slog.String("oem", record.Get(n.columns.OEM)),
				slog.String("model", record.Get(n.columns.Model)),
				slog.String("error", err.Error()))
			continue
		}
		result.Devices = append(result.Devices, device)
	}

	n.logger.InfoContext(ctx, "normalized dataset",
		slog.Int("device_count", len(result.Devices)),
		slog.Int("skipped_rows", result.SkippedRows))

	return result
}
