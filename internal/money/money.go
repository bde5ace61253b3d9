// Package money provides exact fixed-point arithmetic for currency values.
//
// All amounts are decimal values quantized to 2 places with round half-up
// (ties away from zero) at every boundary: parse, multiply, divide, and sum.
// Float64 is never used for monetary state.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of minor-unit decimal places for currency values.
const Precision = 2

// Zero is the zero amount.
var Zero = decimal.Zero

// Parse converts a numeric string into an exact amount quantized to
// currency precision. Empty or unparsable input is an error.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("cannot parse empty string as money")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse %q as money: %w", s, err)
	}
	return d.Round(Precision), nil
}

// Sum adds the given amounts and quantizes the total.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total.Round(Precision)
}

// Mul multiplies a unit amount by an integer quantity and quantizes.
func Mul(amount decimal.Decimal, quantity int64) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(quantity)).Round(Precision)
}

// Div divides an amount and quantizes the quotient. Dividing by zero is a
// reported error, never a silent zero.
func Div(amount, divisor decimal.Decimal) (decimal.Decimal, error) {
	if divisor.IsZero() {
		return decimal.Zero, fmt.Errorf("cannot divide money by zero")
	}
	return amount.DivRound(divisor, Precision), nil
}

// Format renders an amount with a thousands separator and currency symbol,
// e.g. "$1,234.56".
func Format(amount decimal.Decimal, symbol string) string {
	s := amount.StringFixed(Precision)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := symbol + b.String() + "." + fracPart
	if neg {
		out = symbol + "-" + b.String() + "." + fracPart
	}
	return out
}

// String renders an amount as an exact decimal string with 2 places. This is
// the only representation money crosses serialization boundaries in.
func String(amount decimal.Decimal) string {
	return amount.StringFixed(Precision)
}
