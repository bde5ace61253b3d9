package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salespulse/internal/money"
	"salespulse/pkg/contracts/domain"
)

// timestampLayouts are the accepted invoice date formats, tried in order;
// the first successful parse wins.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
	"02/01/2006 15:04",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
}

// requiredFields must be present and non-blank on every row.
var requiredFields = []string{
	domain.FieldInvoiceNo,
	domain.FieldStockCode,
	domain.FieldDescription,
	domain.FieldCountry,
}

// DecodeRow validates one raw row into a transaction. All field failures on
// the row are collected into a single validation error rather than stopping
// at the first. rowNum is 1-based with the header as row 1.
func DecodeRow(row domain.RawRow, rowNum int) Result {
	var fieldErrs []domain.FieldError

	for _, field := range requiredFields {
		if strings.TrimSpace(row[field]) == "" {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s cannot be empty", field),
				Kind:    domain.ErrKindRequired,
			})
		}
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(row[domain.FieldQuantity]), 10, 64)
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{
			Field:   domain.FieldQuantity,
			Message: fmt.Sprintf("invalid integer: %q", row[domain.FieldQuantity]),
			Kind:    domain.ErrKindIntParsing,
		})
	}

	unitPrice, err := money.Parse(row[domain.FieldUnitPrice])
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{
			Field:   domain.FieldUnitPrice,
			Message: fmt.Sprintf("invalid unit price: %q", row[domain.FieldUnitPrice]),
			Kind:    domain.ErrKindDecimalParsing,
		})
	}

	invoiceDate, err := parseTimestamp(row[domain.FieldInvoiceDate])
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{
			Field:   domain.FieldInvoiceDate,
			Message: fmt.Sprintf("cannot parse date: %q", row[domain.FieldInvoiceDate]),
			Kind:    domain.ErrKindDatetimeParsing,
		})
	}

	if len(fieldErrs) > 0 {
		return Err(&domain.ValidationError{
			RowNumber: rowNum,
			Row:       row,
			Errors:    fieldErrs,
		})
	}

	return Ok(&domain.Transaction{
		InvoiceNo:   strings.TrimSpace(row[domain.FieldInvoiceNo]),
		StockCode:   strings.TrimSpace(row[domain.FieldStockCode]),
		Description: strings.TrimSpace(row[domain.FieldDescription]),
		Quantity:    quantity,
		InvoiceDate: invoiceDate,
		UnitPrice:   unitPrice,
		CustomerID:  strings.TrimSpace(row[domain.FieldCustomerID]),
		Country:     strings.TrimSpace(row[domain.FieldCountry]),
	})
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no accepted layout matches %q", s)
}
