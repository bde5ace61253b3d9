package rfm

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salespulse/internal/money"
	"salespulse/internal/stats"
	"salespulse/pkg/contracts/domain"
)

// SegmentationResult is the outcome of RFM scoring and whale detection.
type SegmentationResult struct {
	Scores            []domain.RFMScore `json:"rfm_scores"`
	WhaleCustomers    []domain.RFMScore `json:"whale_customers"`
	WhaleCount        int               `json:"whale_count"`
	WhaleRevenue      decimal.Decimal   `json:"whale_revenue"`
	WhaleRevenueShare float64           `json:"whale_revenue_share"`
	TotalCustomers    int               `json:"total_customers"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
}

// Segment scores the completed profiles (pass 2). Recency is measured in
// days from the reference date to each profile's last-seen timestamp; a nil
// reference date defaults to the latest last-seen across profiles. Each
// dimension is banded 1-5 against its own quintile boundaries, recency
// inverted so fewer days score higher. Profiles at or above the
// whalePercentile of monetary value are flagged as whales. An empty
// profile map yields an all-zero result, not an error.
func Segment(
	profiles map[string]*domain.CustomerProfile,
	referenceDate *time.Time,
	whalePercentile int,
	logger *slog.Logger,
) SegmentationResult {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("rfm segmentation started",
		slog.Int("total_customers", len(profiles)),
		slog.Int("whale_percentile", whalePercentile))

	if len(profiles) == 0 {
		logger.Warn("rfm segmentation skipped", slog.String("reason", "no customer profiles"))
		return SegmentationResult{
			Scores:         []domain.RFMScore{},
			WhaleCustomers: []domain.RFMScore{},
			WhaleRevenue:   decimal.Zero,
			TotalRevenue:   decimal.Zero,
		}
	}

	refDate := time.Time{}
	if referenceDate != nil {
		refDate = *referenceDate
	} else {
		refDate, _ = MaxLastSeen(profiles)
	}

	// Deterministic iteration order for the output score list.
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recencyValues := make([]float64, 0, len(ids))
	frequencyValues := make([]float64, 0, len(ids))
	monetaryValues := make([]float64, 0, len(ids))
	for _, id := range ids {
		p := profiles[id]
		recencyValues = append(recencyValues, float64(recencyDays(refDate, p.LastSeen)))
		frequencyValues = append(frequencyValues, float64(p.TransactionCount))
		m, _ := p.TotalSpend.Float64()
		monetaryValues = append(monetaryValues, m)
	}

	recencyQuintiles := stats.Quintiles(recencyValues)
	frequencyQuintiles := stats.Quintiles(frequencyValues)
	monetaryQuintiles := stats.Quintiles(monetaryValues)
	whaleThreshold := stats.Percentile(monetaryValues, float64(whalePercentile))

	scores := make([]domain.RFMScore, 0, len(ids))
	totalRevenue := decimal.Zero

	for i, id := range ids {
		p := profiles[id]
		days := recencyDays(refDate, p.LastSeen)
		monetary := monetaryValues[i]

		r := stats.BandScore(float64(days), recencyQuintiles, true)
		f := stats.BandScore(float64(p.TransactionCount), frequencyQuintiles, false)
		m := stats.BandScore(monetary, monetaryQuintiles, false)

		scores = append(scores, domain.RFMScore{
			CustomerID:     id,
			RecencyDays:    days,
			Frequency:      p.TransactionCount,
			Monetary:       p.TotalSpend,
			RecencyScore:   r,
			FrequencyScore: f,
			MonetaryScore:  m,
			RFM:            fmt.Sprintf("%d%d%d", r, f, m),
			IsWhale:        monetary >= whaleThreshold,
		})
		totalRevenue = totalRevenue.Add(p.TotalSpend)
	}

	whales := make([]domain.RFMScore, 0)
	whaleRevenue := decimal.Zero
	for _, s := range scores {
		if s.IsWhale {
			whales = append(whales, s)
			whaleRevenue = whaleRevenue.Add(s.Monetary)
		}
	}
	sort.SliceStable(whales, func(i, j int) bool {
		return whales[i].Monetary.GreaterThan(whales[j].Monetary)
	})

	whaleShare := 0.0
	if totalRevenue.IsPositive() {
		share, _ := whaleRevenue.Mul(decimal.NewFromInt(100)).Div(totalRevenue).Float64()
		whaleShare = share
	}

	totalRevenue = totalRevenue.Round(money.Precision)
	whaleRevenue = whaleRevenue.Round(money.Precision)

	logger.Info("rfm segmentation completed",
		slog.Int("total_customers", len(scores)),
		slog.Int("whale_count", len(whales)),
		slog.String("whale_revenue", money.String(whaleRevenue)),
		slog.Float64("whale_revenue_share", whaleShare))

	return SegmentationResult{
		Scores:            scores,
		WhaleCustomers:    whales,
		WhaleCount:        len(whales),
		WhaleRevenue:      whaleRevenue,
		WhaleRevenueShare: whaleShare,
		TotalCustomers:    len(scores),
		TotalRevenue:      totalRevenue,
	}
}

// recencyDays is the whole number of days between the reference date and
// the last-seen timestamp, truncated toward zero.
func recencyDays(reference, lastSeen time.Time) int {
	return int(reference.Sub(lastSeen).Hours() / 24)
}
