// Package rfm implements the two-pass Recency/Frequency/Monetary customer
// analysis: pass 1 folds the transaction stream into one compact profile
// per customer, pass 2 scores the profiles in memory.
package rfm

import (
	"fmt"
	"log/slog"
	"time"

	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

// BuildProfiles folds a transaction view into a map from customer id to
// profile (pass 1). Transactions without a customer id are counted but
// excluded. Memory is bounded by the number of distinct customers, not by
// the number of transactions.
func BuildProfiles(view stream.Stream[*domain.Transaction], logger *slog.Logger) map[string]*domain.CustomerProfile {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("customer profile building started")

	profiles := make(map[string]*domain.CustomerProfile)
	processed := 0
	skipped := 0

	for {
		tx, ok := view.Next()
		if !ok {
			break
		}
		processed++

		if !tx.HasCustomerID() {
			skipped++
			continue
		}

		profile, exists := profiles[tx.CustomerID]
		if !exists {
			profiles[tx.CustomerID] = &domain.CustomerProfile{
				CustomerID:       tx.CustomerID,
				FirstSeen:        tx.InvoiceDate,
				LastSeen:         tx.InvoiceDate,
				TransactionCount: 1,
				TotalSpend:       tx.TotalAmount(),
			}
			continue
		}

		profile.TransactionCount++
		profile.TotalSpend = profile.TotalSpend.Add(tx.TotalAmount())
		if tx.InvoiceDate.Before(profile.FirstSeen) {
			profile.FirstSeen = tx.InvoiceDate
		}
		if tx.InvoiceDate.After(profile.LastSeen) {
			profile.LastSeen = tx.InvoiceDate
		}
	}

	logger.Info("customer profile building completed",
		slog.Int("transactions_processed", processed),
		slog.Int("unique_customers", len(profiles)),
		slog.Int("skipped_no_customer_id", skipped))

	return profiles
}

// MaxLastSeen returns the latest last-seen timestamp across profiles, used
// as the default recency reference date. Empty input is an error.
func MaxLastSeen(profiles map[string]*domain.CustomerProfile) (time.Time, error) {
	if len(profiles) == 0 {
		return time.Time{}, fmt.Errorf("cannot determine reference date from empty profiles")
	}
	var max time.Time
	for _, p := range profiles {
		if p.LastSeen.After(max) {
			max = p.LastSeen
		}
	}
	return max, nil
}
