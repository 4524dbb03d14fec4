// Command report generates the static HTML customer report for one
// year and writes it to the configured output directory.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"customerpulse/internal/analytics"
	"customerpulse/internal/config"
	"customerpulse/internal/infrastructure"
	"customerpulse/internal/loader"
	"customerpulse/internal/report"
)

func main() {
	year := flag.Int("year", 0, "report year (defaults to the current year)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	targetYear := *year
	if targetYear == 0 {
		targetYear = time.Now().Year()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	source, err := loader.FromConfig(ctx, cfg.Source, logger)
	if err != nil {
		logger.Error("Failed to build source loader", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, err := source.Load(ctx)
	if err != nil {
		logger.Error("Failed to load source rows", slog.String("error", err.Error()))
		os.Exit(1)
	}

	snapshot, stats, err := analytics.Run(rows, analytics.Config{
		DateColumn:        cfg.Source.DateColumn,
		CustomerColumn:    cfg.Source.CustomerColumn,
		Year:              targetYear,
		ExcludedCustomers: cfg.Source.ExcludedCustomers,
	}, time.Now)
	infrastructure.ObservePipelineRun(stats, err)
	if err != nil {
		logger.Error("Failed to compute snapshot",
			slog.Int("year", targetYear),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("snapshot computed",
		slog.Int("year", targetYear),
		slog.Int("rows_in", stats.Clean.RowsIn),
		slog.Int("rows_kept", stats.Clean.Kept))

	path, err := report.NewGenerator(cfg.Report, logger).Generate(snapshot)
	if err != nil {
		logger.Error("Failed to generate report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("report generated", slog.String("path", path))
}
