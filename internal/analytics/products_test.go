package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/money"
	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

func TestAnalyzeProducts(t *testing.T) {
	result := AnalyzeProducts(view(
		tx("536365", "85123A", "HEART HOLDER", "10.00", 3, dec1, "17850", "United Kingdom"),
		tx("536366", "85123A", "HEART HOLDER", "10.00", 2, dec2, "17850", "United Kingdom"),
		tx("536367", "71053", "METAL LANTERN", "20.00", 1, dec1, "13047", "United Kingdom"),
		tx("536368", "22728", "ALARM CLOCK", "1.00", 4, jan5, "12583", "France"),
	), 2, nil)

	assert.Equal(t, 3, result.TotalProductCount)
	assert.Equal(t, "74.00", money.String(result.TotalRevenue))

	require.Len(t, result.TopProducts, 2)
	assert.Equal(t, "85123A", result.TopProducts[0].StockCode)
	assert.Equal(t, "50.00", money.String(result.TopProducts[0].Revenue))
	assert.Equal(t, int64(5), result.TopProducts[0].QuantitySold)
	assert.Equal(t, 2, result.TopProducts[0].TransactionCount)
	assert.Equal(t, "71053", result.TopProducts[1].StockCode)
}

func TestAnalyzeProductsRevenueTieBreaksByStockCode(t *testing.T) {
	result := AnalyzeProducts(view(
		tx("1", "BBB", "B", "10.00", 1, dec1, "", "UK"),
		tx("2", "AAA", "A", "10.00", 1, dec1, "", "UK"),
		tx("3", "CCC", "C", "10.00", 1, dec1, "", "UK"),
	), 2, nil)

	require.Len(t, result.TopProducts, 2)
	assert.Equal(t, "AAA", result.TopProducts[0].StockCode)
	assert.Equal(t, "BBB", result.TopProducts[1].StockCode)
}

func TestAnalyzeProductsUnknownDescription(t *testing.T) {
	result := AnalyzeProducts(view(
		tx("1", "85123A", "", "10.00", 1, dec1, "", "UK"),
	), 5, nil)

	require.Len(t, result.TopProducts, 1)
	assert.Equal(t, "Unknown", result.TopProducts[0].Description)
}

func TestAnalyzeProductsEmpty(t *testing.T) {
	result := AnalyzeProducts(stream.Empty[*domain.Transaction](), 10, nil)
	assert.Empty(t, result.TopProducts)
	assert.Equal(t, 0, result.TotalProductCount)
}
