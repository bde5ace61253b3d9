package analytics

import (
	"log/slog"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"salespulse/internal/stats"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// AnomalyTransaction is one flagged outlier.
type AnomalyTransaction struct {
	Transaction *domain.Transaction `json:"transaction"`
	ZScore      float64             `json:"z_score"`
	Value       decimal.Decimal     `json:"transaction_value"`
}

// AnomalyResult holds the outcome of z-score anomaly detection.
type AnomalyResult struct {
	Anomalies         []AnomalyTransaction `json:"anomalies"`
	TotalTransactions int                  `json:"total_transactions"`
	AnomalyCount      int                  `json:"anomaly_count"`
	MeanValue         float64              `json:"mean_transaction_value"`
	StdDevValue       float64              `json:"stddev_transaction_value"`
}

// DetectAnomalies flags transactions whose absolute amount deviates from
// the mean by at least threshold standard deviations.
//
// The fold runs two sub-passes over its one view: the first accumulates a
// Welford mean/variance of abs(total amount) while buffering every
// (transaction, value) pair, the second scores the buffered values against
// the final statistics. Buffering the pass makes this the one aggregator
// with O(total records) memory instead of O(unique-key); the trade is exact
// global statistics in a single read of the source. A zero standard
// deviation flags nothing. Anomalies are returned sorted by descending
// absolute z-score.
func DetectAnomalies(view stream.Stream[*domain.Transaction], threshold float64, logger *slog.Logger) AnomalyResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("anomaly detection started", slog.Float64("threshold", threshold))

	var welford stats.Welford
	type buffered struct {
		tx    *domain.Transaction
		value float64
	}
	var buffer []buffered

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		value, _ := tx.TotalAmount().Abs().Float64()
		welford.Update(value)
		buffer = append(buffer, buffered{tx: tx, value: value})
	}

	var anomalies []AnomalyTransaction
	for _, b := range buffer {
		z := welford.ZScore(b.value)
		if math.Abs(z) >= threshold {
			anomalies = append(anomalies, AnomalyTransaction{
				Transaction: b.tx,
				ZScore:      z,
				Value:       b.tx.TotalAmount(),
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return math.Abs(anomalies[i].ZScore) > math.Abs(anomalies[j].ZScore)
	})

	logger.Info("anomaly detection completed",
		slog.Int("total_transactions", len(buffer)),
		slog.Int("anomaly_count", len(anomalies)),
		slog.Float64("mean_value", welford.Mean()),
		slog.Float64("stddev_value", welford.StdDev()))

	return AnomalyResult{
		Anomalies:         anomalies,
		TotalTransactions: len(buffer),
		AnomalyCount:      len(anomalies),
		MeanValue:         welford.Mean(),
		StdDevValue:       welford.StdDev(),
	}
}
