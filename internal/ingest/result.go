// Package ingest streams raw delimited rows into validated transactions.
//
// The decoder is the single authoritative boundary between untyped row data
// and the strongly-typed Transaction: every row becomes either an Ok result
// carrying an immutable Transaction or an Err result carrying the
// diagnostics destined for the dead-letter queue. Per-row failures never
// abort a run.
package ingest

import "salespulse/pkg/contracts/domain"

// Result is the outcome of decoding one row: exactly one of a validated
// transaction or a validation error.
type Result struct {
	tx  *domain.Transaction
	err *domain.ValidationError
}

// Ok wraps a validated transaction.
func Ok(tx *domain.Transaction) Result {
	return Result{tx: tx}
}

// Err wraps a validation failure.
func Err(ve *domain.ValidationError) Result {
	return Result{err: ve}
}

// IsOk reports whether the result carries a transaction.
func (r Result) IsOk() bool { return r.tx != nil }

// Tx returns the transaction, nil for error results.
func (r Result) Tx() *domain.Transaction { return r.tx }

// Err returns the validation error, nil for ok results.
func (r Result) Err() *domain.ValidationError { return r.err }
