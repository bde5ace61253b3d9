package analytics

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"salespulse/internal/money"
	"salespulse/internal/stats"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// ProductMetrics are the aggregates for a single product.
type ProductMetrics struct {
	StockCode        string          `json:"stock_code"`
	Description      string          `json:"description"`
	Revenue          decimal.Decimal `json:"revenue"`
	QuantitySold     int64           `json:"quantity_sold"`
	TransactionCount int             `json:"transaction_count"`
}

// ProductsResult holds the product ranking for one run.
type ProductsResult struct {
	TopProducts       []ProductMetrics `json:"top_products"`
	TotalProductCount int              `json:"total_product_count"`
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
}

// AnalyzeProducts folds a transaction view into per-product aggregates and
// selects the top K products by revenue with a bounded heap. The latest
// non-empty description seen for a product is retained. Revenue ties rank
// by ascending stock code.
func AnalyzeProducts(view stream.Stream[*domain.Transaction], topK int, logger *slog.Logger) ProductsResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("products analysis started", slog.Int("top_k", topK))

	revenue := make(map[string]decimal.Decimal)
	quantities := make(map[string]int64)
	counts := make(map[string]int)
	descriptions := make(map[string]string)
	total := decimal.Zero

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		amount := tx.TotalAmount()
		revenue[tx.StockCode] = revenue[tx.StockCode].Add(amount)
		quantities[tx.StockCode] += tx.Quantity
		counts[tx.StockCode]++
		total = total.Add(amount)

		if tx.Description != "" {
			descriptions[tx.StockCode] = tx.Description
		}
	}

	selector := stats.NewTopK(topK, decimal.Decimal.LessThan)
	for code, rev := range revenue {
		selector.Offer(code, rev.Round(money.Precision))
	}

	ranking := selector.Ranking()
	topProducts := make([]ProductMetrics, 0, len(ranking))
	for _, entry := range ranking {
		desc := descriptions[entry.Key]
		if desc == "" {
			desc = "Unknown"
		}
		topProducts = append(topProducts, ProductMetrics{
			StockCode:        entry.Key,
			Description:      desc,
			Revenue:          entry.Value,
			QuantitySold:     quantities[entry.Key],
			TransactionCount: counts[entry.Key],
		})
	}

	logger.Info("products analysis completed",
		slog.Int("total_product_count", len(revenue)),
		slog.Int("top_k", len(topProducts)),
		slog.String("total_revenue", money.String(total.Round(money.Precision))))

	return ProductsResult{
		TopProducts:       topProducts,
		TotalProductCount: len(revenue),
		TotalRevenue:      total.Round(money.Precision),
	}
}
