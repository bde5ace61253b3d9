package analytics

import (
	"log/slog"
	"strings"

	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// DataQualityResult holds completeness metrics over the valid rows.
type DataQualityResult struct {
	TotalRows          int     `json:"total_rows"`
	ValidRows          int     `json:"valid_rows"`
	MissingCustomerID  int     `json:"missing_customer_id"`
	MissingDescription int     `json:"missing_description"`
	CompletenessRate   float64 `json:"completeness_rate"`
}

// AnalyzeDataQuality counts missing customer ids and blank descriptions in
// a single pass. A row is complete when it has both; the completeness rate
// is complete rows over total, 0 for an empty view.
func AnalyzeDataQuality(view stream.Stream[*domain.Transaction], logger *slog.Logger) DataQualityResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("data quality analysis started")

	total := 0
	missingCustomer := 0
	missingDescription := 0

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		total++
		if !tx.HasCustomerID() {
			missingCustomer++
		}
		if strings.TrimSpace(tx.Description) == "" {
			missingDescription++
		}
	}

	rate := 0.0
	if total > 0 {
		worst := missingCustomer
		if missingDescription > worst {
			worst = missingDescription
		}
		rate = float64(total-worst) / float64(total) * 100
	}

	logger.Info("data quality analysis completed",
		slog.Int("total_rows", total),
		slog.Int("missing_customer_id", missingCustomer),
		slog.Int("missing_description", missingDescription))

	return DataQualityResult{
		TotalRows:          total,
		ValidRows:          total,
		MissingCustomerID:  missingCustomer,
		MissingDescription: missingDescription,
		CompletenessRate:   rate,
	}
}
