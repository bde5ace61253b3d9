package rfm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/money"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

func tx(invoice, price string, qty int64, date time.Time, customer string) *domain.Transaction {
	return &domain.Transaction{
		InvoiceNo:   invoice,
		StockCode:   "85123A",
		Description: "HEART HOLDER",
		Quantity:    qty,
		InvoiceDate: date,
		UnitPrice:   decimal.RequireFromString(price),
		CustomerID:  customer,
		Country:     "United Kingdom",
	}
}

func TestBuildProfiles(t *testing.T) {
	d1 := time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2010, 12, 15, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2011, 1, 10, 0, 0, 0, 0, time.UTC)

	profiles := BuildProfiles(stream.FromSlice([]*domain.Transaction{
		tx("1", "10.00", 2, d2, "A"),
		tx("2", "5.00", 1, d1, "A"),
		tx("3", "7.50", 4, d3, "A"),
		tx("4", "3.00", 1, d1, "B"),
		tx("5", "1.00", 1, d1, ""), // no customer id, excluded
	}), nil)

	require.Len(t, profiles, 2)

	a := profiles["A"]
	assert.Equal(t, 3, a.TransactionCount)
	assert.Equal(t, "55.00", money.String(a.TotalSpend))
	assert.Equal(t, d1, a.FirstSeen)
	assert.Equal(t, d3, a.LastSeen)

	b := profiles["B"]
	assert.Equal(t, 1, b.TransactionCount)
	assert.Equal(t, "3.00", money.String(b.TotalSpend))
}

func TestBuildProfilesIncludesReturns(t *testing.T) {
	d := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	profiles := BuildProfiles(stream.FromSlice([]*domain.Transaction{
		tx("1", "10.00", 5, d, "A"),
		tx("C2", "10.00", -2, d, "A"),
	}), nil)

	require.Len(t, profiles, 1)
	assert.Equal(t, 2, profiles["A"].TransactionCount)
	assert.Equal(t, "30.00", money.String(profiles["A"].TotalSpend))
}

func TestMaxLastSeen(t *testing.T) {
	d1 := time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2011, 2, 3, 0, 0, 0, 0, time.UTC)

	got, err := MaxLastSeen(map[string]*domain.CustomerProfile{
		"A": {LastSeen: d1},
		"B": {LastSeen: d2},
	})
	require.NoError(t, err)
	assert.Equal(t, d2, got)

	_, err = MaxLastSeen(nil)
	assert.Error(t, err)
}

func TestSegmentWhaleDetection(t *testing.T) {
	ref := time.Date(2011, 3, 1, 0, 0, 0, 0, time.UTC)
	profiles := map[string]*domain.CustomerProfile{
		"A": {
			CustomerID:       "A",
			LastSeen:         ref.AddDate(0, 0, -1),
			TransactionCount: 10,
			TotalSpend:       decimal.RequireFromString("110.00"),
		},
		"B": {
			CustomerID:       "B",
			LastSeen:         ref.AddDate(0, 0, -30),
			TransactionCount: 1,
			TotalSpend:       decimal.RequireFromString("10.00"),
		},
	}

	result := Segment(profiles, &ref, 50, nil)

	assert.Equal(t, 2, result.TotalCustomers)
	assert.Equal(t, "120.00", money.String(result.TotalRevenue))

	// The 50th percentile of {10, 110} interpolates to 60, so only A is
	// at or above the threshold.
	require.Equal(t, 1, result.WhaleCount)
	assert.Equal(t, "A", result.WhaleCustomers[0].CustomerID)
	assert.Equal(t, "110.00", money.String(result.WhaleRevenue))
	assert.InDelta(t, 91.6667, result.WhaleRevenueShare, 0.001)
}

func TestSegmentScoresAndDefaultReference(t *testing.T) {
	base := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	profiles := make(map[string]*domain.CustomerProfile)
	for i, id := range []string{"A", "B", "C", "D", "E"} {
		profiles[id] = &domain.CustomerProfile{
			CustomerID:       id,
			LastSeen:         base.AddDate(0, 0, -10*i),
			TransactionCount: 5 - i,
			TotalSpend:       decimal.NewFromInt(int64(100 * (5 - i))),
		}
	}

	// nil reference date defaults to the latest last-seen, which is A's.
	result := Segment(profiles, nil, 99, nil)
	require.Len(t, result.Scores, 5)

	byID := make(map[string]domain.RFMScore)
	for _, s := range result.Scores {
		byID[s.CustomerID] = s
	}

	// A is the most recent, most frequent, highest spender.
	assert.Equal(t, 0, byID["A"].RecencyDays)
	assert.Equal(t, 5, byID["A"].RecencyScore)
	assert.Equal(t, 5, byID["A"].FrequencyScore)
	assert.Equal(t, 5, byID["A"].MonetaryScore)
	assert.Equal(t, "555", byID["A"].RFM)

	// E is the stalest and smallest on every dimension.
	assert.Equal(t, 40, byID["E"].RecencyDays)
	assert.Equal(t, 1, byID["E"].RecencyScore)
	assert.Equal(t, 1, byID["E"].FrequencyScore)
	assert.Equal(t, 1, byID["E"].MonetaryScore)
	assert.Equal(t, "111", byID["E"].RFM)
}

func TestSegmentWhalesSortedByMonetaryDescending(t *testing.T) {
	ref := time.Date(2011, 3, 1, 0, 0, 0, 0, time.UTC)
	profiles := map[string]*domain.CustomerProfile{
		"A": {CustomerID: "A", LastSeen: ref, TransactionCount: 1, TotalSpend: decimal.NewFromInt(100)},
		"B": {CustomerID: "B", LastSeen: ref, TransactionCount: 1, TotalSpend: decimal.NewFromInt(300)},
		"C": {CustomerID: "C", LastSeen: ref, TransactionCount: 1, TotalSpend: decimal.NewFromInt(200)},
	}

	result := Segment(profiles, &ref, 1, nil)

	// Percentile 1 of {100,200,300} is barely above 100, so every
	// customer at or above it qualifies except none are excluded fully;
	// check ordering of whatever qualified.
	require.GreaterOrEqual(t, result.WhaleCount, 2)
	for i := 1; i < len(result.WhaleCustomers); i++ {
		assert.True(t, result.WhaleCustomers[i-1].Monetary.GreaterThanOrEqual(result.WhaleCustomers[i].Monetary))
	}
}

func TestSegmentEmptyProfiles(t *testing.T) {
	result := Segment(nil, nil, 99, nil)
	assert.Equal(t, 0, result.TotalCustomers)
	assert.Equal(t, 0, result.WhaleCount)
	assert.Empty(t, result.Scores)
	assert.Equal(t, "0.00", money.String(result.TotalRevenue))
}
