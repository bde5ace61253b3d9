package analytics

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"salespulse/internal/money"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// GeographyResult holds per-country revenue aggregates.
type GeographyResult struct {
	CountryRevenue           map[string]decimal.Decimal `json:"country_revenue"`
	CountryTransactionCounts map[string]int             `json:"country_transaction_counts"`
	CountryRevenueShare      map[string]float64         `json:"country_revenue_share"`
	TotalRevenue             decimal.Decimal            `json:"total_revenue"`
}

// AnalyzeGeography folds a transaction view into revenue and transaction
// counts grouped by country. Revenue share is left empty when total revenue
// is zero or negative, guarding the division.
func AnalyzeGeography(view stream.Stream[*domain.Transaction], logger *slog.Logger) GeographyResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("geography analysis started")

	revenue := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	total := decimal.Zero

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		amount := tx.TotalAmount()
		revenue[tx.Country] = revenue[tx.Country].Add(amount)
		counts[tx.Country]++
		total = total.Add(amount)
	}

	total = total.Round(money.Precision)
	for k, v := range revenue {
		revenue[k] = v.Round(money.Precision)
	}

	share := make(map[string]float64)
	if total.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for country, rev := range revenue {
			pct, _ := rev.Mul(hundred).Div(total).Float64()
			share[country] = pct
		}
	}

	logger.Info("geography analysis completed",
		slog.Int("country_count", len(revenue)),
		slog.String("total_revenue", money.String(total)))

	return GeographyResult{
		CountryRevenue:           revenue,
		CountryTransactionCounts: counts,
		CountryRevenueShare:      share,
		TotalRevenue:             total,
	}
}
