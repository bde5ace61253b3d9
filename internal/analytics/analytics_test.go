package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// tx builds a transaction for tests; price is given as a decimal string.
func tx(invoice, stock, desc, price string, qty int64, date time.Time, customer, country string) *domain.Transaction {
	return &domain.Transaction{
		InvoiceNo:   invoice,
		StockCode:   stock,
		Description: desc,
		Quantity:    qty,
		InvoiceDate: date,
		UnitPrice:   decimal.RequireFromString(price),
		CustomerID:  customer,
		Country:     country,
	}
}

func view(txs ...*domain.Transaction) stream.Stream[*domain.Transaction] {
	return stream.FromSlice(txs)
}

var (
	dec1 = time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	dec2 = time.Date(2010, 12, 2, 10, 0, 0, 0, time.UTC)
	jan5 = time.Date(2011, 1, 5, 14, 30, 0, 0, time.UTC)
)
