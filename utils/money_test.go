package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "R$ 0.00"},
		{"12.5", "R$ 12.50"},
		{"19.90", "R$ 19.90"},
		{"999.999", "R$ 1,000.00"},
		{"1234.56", "R$ 1,234.56"},
		{"1234567.8", "R$ 1,234,567.80"},
		{"-45.1", "-R$ 45.10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Feijão", Truncate("Feijão Carioca", 6))
	assert.Equal(t, "Arroz", Truncate("Arroz", 40))
	assert.Equal(t, "", Truncate("Arroz", 0))
}
