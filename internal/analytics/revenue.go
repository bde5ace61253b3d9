// Package analytics contains the single-pass aggregators of the pipeline.
//
// Each aggregator folds one broadcast view of the validated transaction
// stream into a closed result record. Aggregators touch every record once,
// own their accumulators exclusively for the duration of the pass, and are
// deterministic given the input order. All of them run in O(1) or
// O(unique-key) working memory except anomaly detection, which buffers the
// full pass (see anomaly.go).
package analytics

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"salespulse/internal/money"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// RevenueResult holds the revenue aggregates for one run.
//
// Gross and net revenue are both the signed sum of transaction amounts:
// returns carry negative amounts, so the two are identical in this model.
type RevenueResult struct {
	GrossRevenue     decimal.Decimal            `json:"gross_revenue"`
	NetRevenue       decimal.Decimal            `json:"net_revenue"`
	DailyRevenue     map[string]decimal.Decimal `json:"daily_revenue"`
	MonthlyRevenue   map[string]decimal.Decimal `json:"monthly_revenue"`
	TransactionCount int                        `json:"transaction_count"`
	ReturnCount      int                        `json:"return_count"`
}

// AnalyzeRevenue folds a transaction view into revenue totals grouped by
// calendar day (keys "YYYY-MM-DD") and year-month (keys "YYYY-MM").
func AnalyzeRevenue(view stream.Stream[*domain.Transaction], logger *slog.Logger) RevenueResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("revenue analysis started")

	gross := decimal.Zero
	daily := make(map[string]decimal.Decimal)
	monthly := make(map[string]decimal.Decimal)
	txCount := 0
	returnCount := 0

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		txCount++

		amount := tx.TotalAmount()
		gross = gross.Add(amount)

		if tx.IsReturn() {
			returnCount++
		}

		dateKey := tx.InvoiceDate.Format("2006-01-02")
		daily[dateKey] = daily[dateKey].Add(amount)

		monthKey := tx.InvoiceDate.Format("2006-01")
		monthly[monthKey] = monthly[monthKey].Add(amount)
	}

	gross = gross.Round(money.Precision)
	for k, v := range daily {
		daily[k] = v.Round(money.Precision)
	}
	for k, v := range monthly {
		monthly[k] = v.Round(money.Precision)
	}

	logger.Info("revenue analysis completed",
		slog.String("net_revenue", money.String(gross)),
		slog.Int("transaction_count", txCount),
		slog.Int("return_count", returnCount))

	return RevenueResult{
		GrossRevenue:     gross,
		NetRevenue:       gross,
		DailyRevenue:     daily,
		MonthlyRevenue:   monthly,
		TransactionCount: txCount,
		ReturnCount:      returnCount,
	}
}
