package analytics

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"salespulse/internal/money"
	"salespulse/internal/stats"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// topReturnedLimit caps how many products the return-frequency ranking
// retains.
const topReturnedLimit = 10

// ReturnedProduct is one entry of the return-frequency ranking.
type ReturnedProduct struct {
	StockCode   string `json:"stock_code"`
	ReturnCount int    `json:"return_count"`
}

// ReturnsResult holds the returns analysis for one run.
type ReturnsResult struct {
	TotalTransactions   int               `json:"total_transactions"`
	ReturnTransactions  int               `json:"return_transactions"`
	ReturnRate          float64           `json:"return_rate"`
	ReturnRevenueImpact decimal.Decimal   `json:"return_revenue_impact"`
	TopReturnedProducts []ReturnedProduct `json:"top_returned_products"`
}

// AnalyzeReturns folds a transaction view into return statistics. The
// ranking keeps the ten most frequently returned products, descending by
// count with ties broken by ascending stock code.
func AnalyzeReturns(view stream.Stream[*domain.Transaction], logger *slog.Logger) ReturnsResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("returns analysis started")

	total := 0
	returns := 0
	impact := decimal.Zero
	returnCounts := make(map[string]int)

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		total++
		if !tx.IsReturn() {
			continue
		}
		returns++
		impact = impact.Add(tx.TotalAmount())
		returnCounts[tx.StockCode]++
	}

	rate := 0.0
	if total > 0 {
		rate = float64(returns) / float64(total) * 100
	}

	selector := stats.NewTopK(topReturnedLimit, func(a, b int) bool { return a < b })
	for code, count := range returnCounts {
		selector.Offer(code, count)
	}
	ranking := selector.Ranking()
	topReturned := make([]ReturnedProduct, 0, len(ranking))
	for _, entry := range ranking {
		topReturned = append(topReturned, ReturnedProduct{
			StockCode:   entry.Key,
			ReturnCount: entry.Value,
		})
	}

	logger.Info("returns analysis completed",
		slog.Int("total_transactions", total),
		slog.Int("return_transactions", returns),
		slog.String("return_revenue_impact", money.String(impact.Round(money.Precision))))

	return ReturnsResult{
		TotalTransactions:   total,
		ReturnTransactions:  returns,
		ReturnRate:          rate,
		ReturnRevenueImpact: impact.Round(money.Precision),
		TopReturnedProducts: topReturned,
	}
}
