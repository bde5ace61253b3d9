package ingest

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// WriteDLQ writes validation errors to a newline-delimited JSON file, one
// object per invalid row, and returns the number of entries written.
func WriteDLQ(entries []*domain.ValidationError, path string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("writing dead-letter queue", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, apperrors.NewStorageError("failed to create DLQ directory", err).
			WithContext("path", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to create DLQ file", err).
			WithContext("path", path)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	count := 0
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return count, apperrors.NewStorageError("failed to encode DLQ entry", err).
				WithContext("row_number", entry.RowNumber)
		}
		count++
	}
	if err := w.Flush(); err != nil {
		return count, apperrors.NewStorageError("failed to flush DLQ file", err)
	}

	logger.Info("dead-letter queue written",
		slog.String("path", path),
		slog.Int("count", count))
	return count, nil
}
