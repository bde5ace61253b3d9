// Command analytics runs the full sales analytics pipeline against an
// input CSV and writes JSON tables, a Markdown summary report, and a
// dead-letter queue of invalid rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	"salespulse/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	input := flag.String("input", "", "input CSV file (overrides config)")
	output := flag.String("output", "", "output directory (overrides config)")
	noAnomaly := flag.Bool("no-anomaly", false, "disable anomaly detection")
	noRFM := flag.Bool("no-rfm", false, "disable RFM segmentation")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *input != "" {
		cfg.Pipeline.InputFile = *input
	}
	if *output != "" {
		cfg.Pipeline.OutputDir = *output
	}
	if *noAnomaly {
		cfg.Pipeline.EnableAnomalyDetection = false
	}
	if *noRFM {
		cfg.Pipeline.EnableRFMAnalysis = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLogger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLogger()

	ctx, runID := infrastructure.WithRunID(context.Background())
	logger.InfoContext(ctx, "analytics run starting", slog.String("run_id", runID))

	results, err := pipeline.Run(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		return err
	}

	if _, err := exporter.WriteTables(results, cfg.Pipeline.TablesDir(), logger); err != nil {
		return err
	}
	reportPath, err := exporter.WriteReport(results, cfg.Pipeline.ReportsDir(), logger)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "analytics run finished",
		slog.String("report", reportPath),
		slog.Int("dlq_count", results.DLQCount))
	return nil
}
