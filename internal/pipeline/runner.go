// Package pipeline orchestrates one end-to-end analytics run: stream the
// input CSV, split valid rows from invalid ones, fan the valid stream out
// to every enabled aggregator, and persist the invalid rows to the
// dead-letter queue. The input file is read exactly once.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/ingest"
	"salespulse/internal/rfm"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// Results bundles the output of every aggregator for one run. Anomaly and
// RFM are nil when disabled by configuration.
type Results struct {
	Revenue     analytics.RevenueResult     `json:"revenue"`
	Geography   analytics.GeographyResult   `json:"geography"`
	Products    analytics.ProductsResult    `json:"products"`
	Returns     analytics.ReturnsResult     `json:"returns"`
	DataQuality analytics.DataQualityResult `json:"data_quality"`
	Anomaly     *analytics.AnomalyResult    `json:"anomaly,omitempty"`
	RFM         *rfm.SegmentationResult     `json:"rfm,omitempty"`

	DLQCount int           `json:"dlq_count"`
	Duration time.Duration `json:"duration"`
}

// Run executes the full pipeline against the configured input file.
//
// The decode stream is partitioned lazily: the valid side feeds the
// aggregators, the invalid side buffers until they finish and is then
// drained to the dead-letter queue, so invalid-side memory is bounded by
// the error count rather than the input size. Aggregators run concurrently,
// each on its own broadcast view of the valid stream.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Results, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	logger.InfoContext(ctx, "pipeline started",
		slog.String("input_file", cfg.Pipeline.InputFile),
		slog.Bool("anomaly_enabled", cfg.Pipeline.EnableAnomalyDetection),
		slog.Bool("rfm_enabled", cfg.Pipeline.EnableRFMAnalysis))

	if err := cfg.Pipeline.EnsureOutputDirs(); err != nil {
		return nil, err
	}
	referenceDate, err := cfg.RFM.ParseReferenceDate()
	if err != nil {
		return nil, err
	}

	source, err := ingest.StreamTransactions(cfg.Pipeline.InputFile, logger)
	if err != nil {
		return nil, err
	}

	okSide, errSide := stream.Partition(source, ingest.Result.IsOk)
	valid := stream.Map(okSide, ingest.Result.Tx)
	invalid := stream.Map(errSide, ingest.Result.Err)

	viewCount := 5
	if cfg.Pipeline.EnableAnomalyDetection {
		viewCount++
	}
	if cfg.Pipeline.EnableRFMAnalysis {
		viewCount++
	}
	views, err := stream.Broadcast[*domain.Transaction](valid, viewCount)
	if err != nil {
		return nil, err
	}

	results := &Results{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		results.Revenue = analytics.AnalyzeRevenue(views[0], logger)
		return nil
	})
	g.Go(func() error {
		results.Geography = analytics.AnalyzeGeography(views[1], logger)
		return nil
	})
	g.Go(func() error {
		results.Products = analytics.AnalyzeProducts(views[2], cfg.Pipeline.TopKProducts, logger)
		return nil
	})
	g.Go(func() error {
		results.Returns = analytics.AnalyzeReturns(views[3], logger)
		return nil
	})
	g.Go(func() error {
		results.DataQuality = analytics.AnalyzeDataQuality(views[4], logger)
		return nil
	})

	next := 5
	if cfg.Pipeline.EnableAnomalyDetection {
		view := views[next]
		next++
		g.Go(func() error {
			r := analytics.DetectAnomalies(view, cfg.Pipeline.ZScoreThreshold, logger)
			results.Anomaly = &r
			return nil
		})
	}
	if cfg.Pipeline.EnableRFMAnalysis {
		view := views[next]
		g.Go(func() error {
			profiles := rfm.BuildProfiles(view, logger)
			r := rfm.Segment(profiles, referenceDate, cfg.RFM.WhalePercentile, logger)
			results.RFM = &r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The aggregators have fully drained the source, so every invalid row
	// is now buffered on the error side.
	errors := stream.Collect(invalid)
	if len(errors) > 0 {
		count, err := ingest.WriteDLQ(errors, cfg.Pipeline.DLQPath(), logger)
		if err != nil {
			return nil, err
		}
		results.DLQCount = count
	}

	results.Duration = time.Since(start)
	logger.InfoContext(ctx, "pipeline completed",
		slog.Int("valid_count", results.Revenue.TransactionCount),
		slog.Int("dlq_count", results.DLQCount),
		slog.Duration("duration", results.Duration))
	return results, nil
}
