package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CancellationPrefix marks invoices that record a cancelled order.
const CancellationPrefix = "C"

// RawRow is a single undecoded row from the input source, keyed by header
// field name. It carries no guarantees beyond string values; the decoder is
// the only boundary that turns it into a Transaction.
type RawRow map[string]string

// Field names of the input schema.
const (
	FieldInvoiceNo   = "InvoiceNo"
	FieldStockCode   = "StockCode"
	FieldDescription = "Description"
	FieldQuantity    = "Quantity"
	FieldInvoiceDate = "InvoiceDate"
	FieldUnitPrice   = "UnitPrice"
	FieldCustomerID  = "CustomerID"
	FieldCountry     = "Country"
)

// Transaction is a validated sales record. Instances are immutable once
// produced by the decoder; aggregators hold shared references and must not
// mutate them.
type Transaction struct {
	InvoiceNo   string          `json:"invoice_no"`
	StockCode   string          `json:"stock_code"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	InvoiceDate time.Time       `json:"invoice_date"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Country     string          `json:"country"`
}

// IsReturn reports whether the transaction records a return. Returns are
// identified by a negative quantity or a cancellation invoice prefix.
func (t *Transaction) IsReturn() bool {
	return t.Quantity < 0 || strings.HasPrefix(t.InvoiceNo, CancellationPrefix)
}

// TotalAmount is UnitPrice * Quantity quantized to currency precision.
// Negative for returns with negative quantity.
func (t *Transaction) TotalAmount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity)).Round(2)
}

// HasCustomerID reports whether the record carries a customer identifier.
func (t *Transaction) HasCustomerID() bool {
	return t.CustomerID != ""
}

// FieldError describes one validation failure on one field of a row.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Validation failure kinds.
const (
	ErrKindRequired        = "required"
	ErrKindIntParsing      = "int_parsing"
	ErrKindDecimalParsing  = "decimal_parsing"
	ErrKindDatetimeParsing = "datetime_parsing"
)

// ValidationError is the dead-letter record for a row that failed
// validation. RowNumber is 1-based and counts the header as row 1, so data
// rows start at 2.
type ValidationError struct {
	RowNumber int          `json:"row_number"`
	Row       RawRow       `json:"data"`
	Errors    []FieldError `json:"errors"`
}
