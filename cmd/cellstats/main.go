// Command cellstats ingests a handset specification dataset and prints the
// aggregate statistics report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cellstats/internal/app"
	"cellstats/internal/config"
	apperrors "cellstats/internal/errors"
	"cellstats/internal/infrastructure"
	"cellstats/pkg/contracts"
	"cellstats/pkg/contracts/domain"
)

func main() {
	input := flag.String("input", "", "dataset path (overrides config)")
	format := flag.String("format", "", "input format: csv | xlsx (overrides config)")
	workers := flag.Int("workers", 0, "fold worker count (overrides config)")
	export := flag.Bool("export", true, "write report files to the output directory")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *input != "" {
		cfg.Input.Path = *input
	}
	if *format != "" {
		cfg.Input.Format = *format
	}
	if *workers > 0 {
		cfg.Input.Workers = *workers
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, logger)

	report, err := application.Run(ctx)
	if err != nil {
		if apperrors.Is(err, context.Canceled) {
			logger.Warn("aggregation interrupted")
		} else {
			logger.Error("aggregation run failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	printReport(report)

	if *export {
		if err := application.Export(ctx, report); err != nil {
			logger.Error("failed to export report files", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func printReport(report domain.Report) {
	fmt.Printf("Rows processed: %d (skipped: %d)\n\n", report.TotalRows, report.SkippedRows)

	if report.TopOEMByWeight != nil {
		fmt.Printf("Highest average body weight: %s (%.2f g over %d devices)\n",
			report.TopOEMByWeight.OEM, report.TopOEMByWeight.Average, report.TopOEMByWeight.Count)
	} else {
		fmt.Println("Highest average body weight: no data")
	}

	if len(report.YearMismatches) == 0 {
		fmt.Println("No devices were announced in one year and released in another.")
	} else {
		fmt.Println("Devices announced in one year and released in another:")
		for _, pair := range report.YearMismatches {
			fmt.Printf("  %s %s (announced %d, released %d)\n",
				pair.OEM, pair.Model, pair.AnnouncedYear, pair.ReleaseYear)
		}
	}

	fmt.Printf("Devices with a single sensor: %d\n", report.SingleSensorCount)

	if report.ModeYear != nil {
		fmt.Printf("Most launches in a year after 1999: %d (%d devices)\n",
			report.ModeYear.Year, report.ModeYear.Count)
	} else {
		fmt.Println("Most launches in a year after 1999: no data")
	}

	if report.MostCommonOEM != "" {
		fmt.Printf("Most common OEM: %s\n", report.MostCommonOEM)
	}
	if report.MostCommonDisplaySize != nil {
		fmt.Printf("Most common display size: %.2f inches\n", *report.MostCommonDisplaySize)
	}
	if report.MeanBodyWeight != nil && report.MedianBodyWeight != nil {
		fmt.Printf("Body weight mean: %.2f g, median: %.2f g\n",
			*report.MeanBodyWeight, *report.MedianBodyWeight)
	}
}
