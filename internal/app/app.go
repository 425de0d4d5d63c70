// Package app wires the cellstats pipeline together: row source,
// normalizer, aggregator, and report writers.
package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cellstats/internal/config"
	"cellstats/internal/exporter"
	"cellstats/internal/normalize"
	"cellstats/internal/source"
	"cellstats/internal/stats"
	"cellstats/internal/validation"
	"cellstats/pkg/contracts/domain"
)

// Application represents the main application container
type Application struct {
	cfg    *config.Config
	logger *slog.Logger
	runID  string
}

// New creates the application from loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	return &Application{
		cfg:    cfg,
		logger: logger.With(slog.String("run_id", runID)),
		runID:  runID,
	}
}

// RunID returns the unique identifier attached to this run's log records.
func (a *Application) RunID() string {
	return a.runID
}

// Run executes a single pipeline pass: ingest, normalize, aggregate.
// The returned report carries full run accounting.
func (a *Application) Run(ctx context.Context) (domain.Report, error) {
	start := time.Now()
	a.logger.InfoContext(ctx, "starting aggregation run",
		slog.String("input_path", a.cfg.Input.Path),
		slog.String("input_format", a.cfg.Input.Format),
		slog.Int("workers", a.cfg.Input.Workers))

	validator := validation.NewFileValidator(a.logger)
	if err := validator.ValidateDataset(a.cfg.Input.Path, a.cfg.Input.Format); err != nil {
		return domain.Report{}, err
	}

	src, err := source.Open(a.cfg.Input)
	if err != nil {
		return domain.Report{}, err
	}

	records, err := src.ReadAll(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	normalizer := normalize.New(a.logger, a.cfg.Columns)
	result := normalizer.NormalizeAll(ctx, records)

	aggregator, err := stats.FoldParallel(ctx, result.Devices, a.cfg.Input.Workers)
	if err != nil {
		return domain.Report{}, err
	}

	report := aggregator.Report()
	report.TotalRows = len(records)
	report.SkippedRows = result.SkippedRows
	report.GeneratedAt = time.Now()

	a.logger.InfoContext(ctx, "aggregation run complete",
		slog.Int("total_rows", report.TotalRows),
		slog.Int("skipped_rows", report.SkippedRows),
		slog.Int("mismatch_count", len(report.YearMismatches)),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}

// Export writes the report files configured under output.
func (a *Application) Export(ctx context.Context, report domain.Report) error {
	outDir := a.cfg.Output.Dir
	if err := validation.NewFileValidator(a.logger).ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	csvWriter := exporter.NewCSVWriter(a.logger)
	jsonWriter := exporter.NewJSONWriter(a.logger)

	if err := csvWriter.WriteReportSummary(filepath.Join(outDir, a.cfg.Output.CSVFile), report); err != nil {
		return err
	}
	if err := csvWriter.WriteMismatches(filepath.Join(outDir, "mismatches.csv"), report.YearMismatches); err != nil {
		return err
	}
	if err := csvWriter.WriteHistogram(filepath.Join(outDir, "histogram.csv"), report.YearHistogram); err != nil {
		return err
	}
	if err := jsonWriter.WriteReport(filepath.Join(outDir, a.cfg.Output.JSONFile), report); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "exported report files", slog.String("output_dir", outDir))
	return nil
}
