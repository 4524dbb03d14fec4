// Command upload replaces the content of the shared Drive file with
// the most recently generated report.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"customerpulse/internal/config"
	"customerpulse/internal/drive"
	"customerpulse/internal/infrastructure"
)

func main() {
	reportPath := flag.String("report", "", "report file to upload (defaults to the configured output path)")
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

	if cfg.Report.DriveFileID == "" {
		logger.Error("No drive file configured, set report.drive_file_id")
		os.Exit(1)
	}

	path := *reportPath
	if path == "" {
		path = filepath.Join(cfg.Report.OutputDir, cfg.Report.FileName)
	}
	if _, err := os.Stat(path); err != nil {
		logger.Error("Report file not found, run the report command first",
			slog.String("path", path))
		os.Exit(1)
	}

	credentials, err := cfg.Source.Credentials()
	if err != nil {
		logger.Error("Failed to load credentials", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uploader, err := drive.NewUploader(ctx, credentials, logger)
	if err != nil {
		logger.Error("Failed to create drive uploader", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := uploader.Upload(ctx, cfg.Report.DriveFileID, path); err != nil {
		logger.Error("Upload failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
