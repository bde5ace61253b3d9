package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/stream"
	"salespulse/pkg/contracts/domain"
)

const sampleCSV = `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,6,2010-12-01 08:26:00,2.55,17850,United Kingdom
536366,71053,WHITE METAL LANTERN,6,2010-12-01 08:28:00,notaprice,17850,United Kingdom
536367,84406B,,8,2010-12-01 08:34:00,2.75,13047,United Kingdom
C536368,22728,ALARM CLOCK BAKELIKE,-4,2010-12-01 09:01:00,3.75,,France
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStreamTransactions(t *testing.T) {
	src, err := StreamTransactions(writeTempCSV(t, sampleCSV), nil)
	require.NoError(t, err)

	results := stream.Collect(src)
	require.Len(t, results, 4)

	assert.True(t, results[0].IsOk())
	assert.False(t, results[1].IsOk(), "unparsable price must fail")
	assert.False(t, results[2].IsOk(), "empty description must fail")
	assert.True(t, results[3].IsOk(), "blank customer id is still valid")

	// Row numbers are 1-based with the header as row 1.
	assert.Equal(t, 3, results[1].Err().RowNumber)
	assert.Equal(t, 4, results[2].Err().RowNumber)

	assert.True(t, results[3].Tx().IsReturn())
	assert.False(t, results[3].Tx().HasCustomerID())
}

func TestStreamTransactionsMissingFile(t *testing.T) {
	_, err := StreamTransactions(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}

func TestStreamTransactionsEmptyFile(t *testing.T) {
	_, err := StreamTransactions(writeTempCSV(t, ""), nil)
	assert.Error(t, err)
}

func TestStreamTransactionsHeaderOnly(t *testing.T) {
	src, err := StreamTransactions(writeTempCSV(t, "InvoiceNo,StockCode\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, stream.Collect(src))
}

func TestStreamTransactionsShortRecord(t *testing.T) {
	// A row with fewer fields than the header maps missing columns to "".
	content := "InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n" +
		"536365,85123A\n"
	src, err := StreamTransactions(writeTempCSV(t, content), nil)
	require.NoError(t, err)

	results := stream.Collect(src)
	require.Len(t, results, 1)
	require.False(t, results[0].IsOk())

	fields := make(map[string]bool)
	for _, fe := range results[0].Err().Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields[domain.FieldDescription])
	assert.True(t, fields[domain.FieldCountry])
}

func TestWriteDLQ(t *testing.T) {
	entries := []*domain.ValidationError{
		{
			RowNumber: 3,
			Row:       domain.RawRow{domain.FieldInvoiceNo: "536366"},
			Errors: []domain.FieldError{
				{Field: domain.FieldUnitPrice, Message: "invalid unit price", Kind: domain.ErrKindDecimalParsing},
			},
		},
		{
			RowNumber: 4,
			Row:       domain.RawRow{domain.FieldInvoiceNo: "536367"},
			Errors: []domain.FieldError{
				{Field: domain.FieldDescription, Message: "Description cannot be empty", Kind: domain.ErrKindRequired},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "errors", "validation_errors.jsonl")
	count, err := WriteDLQ(entries, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var first domain.ValidationError
	lines := splitLines(data)
	require.Len(t, lines, 2)
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, 3, first.RowNumber)
	assert.Equal(t, domain.ErrKindDecimalParsing, first.Errors[0].Kind)
}

func TestWriteDLQEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validation_errors.jsonl")
	count, err := WriteDLQ(nil, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
