package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// StreamTransactions opens a CSV file and returns a lazy stream of decode
// results, one per data row. Only one row is held in memory at a time; the
// file is closed when the stream is exhausted.
//
// A missing or unreadable file, or a file with no header, is a fatal
// resource error. Per-row validation failures are never errors here; they
// are emitted as Err results.
func StreamTransactions(path string, logger *slog.Logger) (stream.Stream[Result], error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewResourceError("failed to open input CSV", err).
			WithContext("path", path)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, apperrors.NewParsingError("input CSV is empty or has no header", nil).
				WithContext("path", path)
		}
		return nil, apperrors.NewParsingError("failed to read CSV header", err).
			WithContext("path", path)
	}

	logger.Info("streaming started",
		slog.String("path", path),
		slog.Int("field_count", len(header)))

	src := &csvSource{
		file:   file,
		reader: reader,
		header: header,
		logger: logger,
		path:   path,
		rowNum: 1, // header is row 1, first data row is 2
	}
	return src, nil
}

type csvSource struct {
	file   *os.File
	reader *csv.Reader
	header []string
	logger *slog.Logger
	path   string

	rowNum     int
	validCount int
	errorCount int
	closed     bool
}

func (s *csvSource) Next() (Result, bool) {
	if s.closed {
		return Result{}, false
	}
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			s.finish()
			return Result{}, false
		}
		if err != nil {
			// Structurally broken line the CSV reader cannot recover;
			// skip it rather than abort the run.
			s.rowNum++
			s.logger.Warn("skipping unreadable CSV line",
				slog.Int("row_number", s.rowNum),
				slog.String("error", err.Error()))
			continue
		}

		s.rowNum++
		row := make(domain.RawRow, len(s.header))
		for i, field := range s.header {
			if i < len(record) {
				row[field] = record[i]
			} else {
				row[field] = ""
			}
		}

		result := DecodeRow(row, s.rowNum)
		if result.IsOk() {
			s.validCount++
		} else {
			s.errorCount++
		}
		return result, true
	}
}

func (s *csvSource) finish() {
	s.closed = true
	s.file.Close()

	total := s.validCount + s.errorCount
	errorRate := 0.0
	if total > 0 {
		errorRate = float64(s.errorCount) / float64(total) * 100
	}
	s.logger.Info("streaming completed",
		slog.String("path", s.path),
		slog.Int("valid_count", s.validCount),
		slog.Int("error_count", s.errorCount),
		slog.Int("total_count", total),
		slog.String("error_rate", fmt.Sprintf("%.2f%%", errorRate)))
}
