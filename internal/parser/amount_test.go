package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"$25.99", "25.99", false},
		{"$1,234,567.89", "1234567.89", false},
		{"0.00", "0.00", false},
		{" 25.99 ", "25.99", false},
		{"40:00", "40.00", false},
		{"19;95", "19.95", false},
		{"12.50:", "12.50", false},
		{"500", "500.00", false},
		{"", "", true},
		{"Amount", "", true},
		{"25.5O", "", true},
		{"N/A", "", true},
		{"25,50", "", true},
		{"1,2,3", "", true},
		{"12,34.56", "", true},
		{"1,234,56", "", true},
		{"-25.99", "", true},
		{"-100.00", "", true},
		{"+5.00", "", true},
		{"1e3", "", true},
		{"2.5E2", "", true},
		{"1,234", "1234.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestSplitFields(t *testing.T) {
	assert.Equal(t, []string{"01/02", "PAYROLL", "500.00"}, splitFields("  01/02\tPAYROLL   500.00 "))
	assert.Empty(t, splitFields("   "))
}
