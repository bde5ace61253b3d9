package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/money"
	"salespulse/internal/pipeline"
)

// ReportFileName is the Markdown summary written into the reports
// directory.
const ReportFileName = "SUMMARY.md"

// WriteReport renders the run results as a Markdown summary and writes it
// into dir, returning the report path.
func WriteReport(results *pipeline.Results, dir string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create reports directory", err).
			WithContext("dir", dir)
	}
	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, []byte(renderReport(results)), 0644); err != nil {
		return "", apperrors.NewStorageError("failed to write report", err).
			WithContext("path", path)
	}

	logger.Info("report written", slog.String("path", path))
	return path, nil
}

func renderReport(r *pipeline.Results) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Sales Analytics Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "## Revenue\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Net revenue | %s |\n", money.Format(r.Revenue.NetRevenue, "$"))
	fmt.Fprintf(&b, "| Transactions | %d |\n", r.Revenue.TransactionCount)
	fmt.Fprintf(&b, "| Returns | %d |\n", r.Revenue.ReturnCount)
	fmt.Fprintf(&b, "| Active days | %d |\n", len(r.Revenue.DailyRevenue))
	fmt.Fprintf(&b, "| Active months | %d |\n\n", len(r.Revenue.MonthlyRevenue))

	fmt.Fprintf(&b, "## Top Countries by Revenue\n\n")
	fmt.Fprintf(&b, "| Country | Revenue | Transactions | Share |\n|---|---|---|---|\n")
	for _, country := range topCountries(r, 10) {
		fmt.Fprintf(&b, "| %s | %s | %d | %.2f%% |\n",
			country,
			money.Format(r.Geography.CountryRevenue[country], "$"),
			r.Geography.CountryTransactionCounts[country],
			r.Geography.CountryRevenueShare[country])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Top Products\n\n")
	fmt.Fprintf(&b, "| Stock Code | Description | Revenue | Quantity |\n|---|---|---|---|\n")
	for _, p := range r.Products.TopProducts {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
			p.StockCode, p.Description, money.Format(p.Revenue, "$"), p.QuantitySold)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Returns\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Return transactions | %d |\n", r.Returns.ReturnTransactions)
	fmt.Fprintf(&b, "| Return rate | %.2f%% |\n", r.Returns.ReturnRate)
	fmt.Fprintf(&b, "| Revenue impact | %s |\n\n", money.Format(r.Returns.ReturnRevenueImpact, "$"))

	fmt.Fprintf(&b, "## Data Quality\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Valid rows | %d |\n", r.DataQuality.TotalRows)
	fmt.Fprintf(&b, "| Missing customer ID | %d |\n", r.DataQuality.MissingCustomerID)
	fmt.Fprintf(&b, "| Missing description | %d |\n", r.DataQuality.MissingDescription)
	fmt.Fprintf(&b, "| Completeness | %.2f%% |\n", r.DataQuality.CompletenessRate)
	fmt.Fprintf(&b, "| Rows sent to DLQ | %d |\n\n", r.DLQCount)

	if r.Anomaly != nil {
		fmt.Fprintf(&b, "## Anomalies\n\n")
		fmt.Fprintf(&b, "Flagged %d of %d transactions (mean %.2f, stddev %.2f).\n\n",
			r.Anomaly.AnomalyCount, r.Anomaly.TotalTransactions,
			r.Anomaly.MeanValue, r.Anomaly.StdDevValue)
		if len(r.Anomaly.Anomalies) > 0 {
			fmt.Fprintf(&b, "| Invoice | Stock Code | Value | Z-Score |\n|---|---|---|---|\n")
			limit := len(r.Anomaly.Anomalies)
			if limit > 10 {
				limit = 10
			}
			for _, a := range r.Anomaly.Anomalies[:limit] {
				fmt.Fprintf(&b, "| %s | %s | %s | %.2f |\n",
					a.Transaction.InvoiceNo, a.Transaction.StockCode,
					money.Format(a.Value, "$"), a.ZScore)
			}
			b.WriteString("\n")
		}
	}

	if r.RFM != nil {
		fmt.Fprintf(&b, "## Customer Segmentation\n\n")
		fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Customers scored | %d |\n", r.RFM.TotalCustomers)
		fmt.Fprintf(&b, "| Whales | %d |\n", r.RFM.WhaleCount)
		fmt.Fprintf(&b, "| Whale revenue | %s |\n", money.Format(r.RFM.WhaleRevenue, "$"))
		fmt.Fprintf(&b, "| Whale revenue share | %.2f%% |\n\n", r.RFM.WhaleRevenueShare)
		if len(r.RFM.WhaleCustomers) > 0 {
			fmt.Fprintf(&b, "| Customer | RFM | Monetary |\n|---|---|---|\n")
			limit := len(r.RFM.WhaleCustomers)
			if limit > 10 {
				limit = 10
			}
			for _, w := range r.RFM.WhaleCustomers[:limit] {
				fmt.Fprintf(&b, "| %s | %s | %s |\n",
					w.CustomerID, w.RFM, money.Format(w.Monetary, "$"))
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "---\n\nRun completed in %s.\n", r.Duration.Round(time.Millisecond))
	return b.String()
}

// topCountries returns up to limit countries ordered by descending revenue,
// ties broken by name.
func topCountries(r *pipeline.Results, limit int) []string {
	countries := make([]string, 0, len(r.Geography.CountryRevenue))
	for c := range r.Geography.CountryRevenue {
		countries = append(countries, c)
	}
	sort.Slice(countries, func(i, j int) bool {
		ri := r.Geography.CountryRevenue[countries[i]]
		rj := r.Geography.CountryRevenue[countries[j]]
		if !ri.Equal(rj) {
			return ri.GreaterThan(rj)
		}
		return countries[i] < countries[j]
	})
	if len(countries) > limit {
		countries = countries[:limit]
	}
	return countries
}
