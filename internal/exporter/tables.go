// Package exporter persists pipeline results as JSON tables and a Markdown
// summary report.
package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/pipeline"
)

// WriteTables writes one pretty-printed JSON file per aggregator result
// into dir and returns the file names written.
func WriteTables(results *pipeline.Results, dir string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tables := []struct {
		name string
		data any
	}{
		{"revenue.json", results.Revenue},
		{"geography.json", results.Geography},
		{"products.json", results.Products},
		{"returns.json", results.Returns},
		{"data_quality.json", results.DataQuality},
	}
	if results.Anomaly != nil {
		tables = append(tables, struct {
			name string
			data any
		}{"anomalies.json", results.Anomaly})
	}
	if results.RFM != nil {
		tables = append(tables, struct {
			name string
			data any
		}{"rfm.json", results.RFM})
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create tables directory", err).
			WithContext("dir", dir)
	}

	written := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := writeJSON(path, t.data); err != nil {
			return written, err
		}
		written = append(written, t.name)
	}

	logger.Info("tables written",
		slog.String("dir", dir),
		slog.Int("count", len(written)))
	return written, nil
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create table file", err).
			WithContext("path", path)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return apperrors.NewStorageError("failed to encode table", err).
			WithContext("path", path)
	}
	return nil
}
