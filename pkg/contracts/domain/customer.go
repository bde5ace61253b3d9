package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerProfile is the compact per-customer aggregate produced by RFM
// pass 1. It is mutated in place while the stream is being folded and is
// read-only afterwards.
type CustomerProfile struct {
	CustomerID       string          `json:"customer_id"`
	FirstSeen        time.Time       `json:"first_seen"`
	LastSeen         time.Time       `json:"last_seen"`
	TransactionCount int             `json:"transaction_count"`
	TotalSpend       decimal.Decimal `json:"total_spend"`
}

// RFMScore holds the scored RFM dimensions for one customer.
// Scores are 1-5 quintile bands; RFM is the three digits concatenated.
type RFMScore struct {
	CustomerID     string          `json:"customer_id"`
	RecencyDays    int             `json:"recency_days"`
	Frequency      int             `json:"frequency"`
	Monetary       decimal.Decimal `json:"monetary"`
	RecencyScore   int             `json:"recency_score"`
	FrequencyScore int             `json:"frequency_score"`
	MonetaryScore  int             `json:"monetary_score"`
	RFM            string          `json:"rfm_score"`
	IsWhale        bool            `json:"is_whale"`
}
