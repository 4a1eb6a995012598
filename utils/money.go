package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats a price as a string like "R$ 1,234.50".
// Uses comma as thousands separator and two decimals, the way flyers print prices.
func FormatBRL(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	s := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + prefix
	b.Grow(len(s) + len(intPart)/3 + 4)
	if neg {
		b.WriteString("-R$ ")
	} else {
		b.WriteString("R$ ")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)

	return b.String()
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
