package textutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashcanvas/ledger/internal/parsererror"
)

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", "Trans. Date", "Trans.Date"},
		{"leading BOM", "\uFEFFDate", "Date"},
		{"trailing BOM", "Trans. Date\uFEFF", "Trans.Date"},
		{"reversed BOM", "\uFFFEAmount", "Amount"},
		{"tabs and newlines", "Trans.\t\nDate\r", "Trans.Date"},
		{"internal runs of spaces", " Trans.  Date ", "Trans.Date"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, CleanHeader(tt.input))
		})
	}
}

func TestCleanHeaderEquivalence(t *testing.T) {
	// Noisy variants of the same header must compare equal after cleaning.
	assert.Equal(t, CleanHeader("Trans. Date"), CleanHeader(" Trans.  Date\uFEFF"))
}

func TestCleanCurrency(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", "12.50", "12.5"},
		{"negative", "-20.00", "-20"},
		{"dollar sign", "$1,234.56", "1234.56"},
		{"surrounding whitespace", "  42.00 ", "42"},
		{"internal space", "$ 100.00", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := CleanCurrency(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, amount.String())
		})
	}
}

func TestCleanCurrencyInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "$,", "abc", "12.3.4"} {
		t.Run("input="+input, func(t *testing.T) {
			_, err := CleanCurrency(input, 0)
			require.Error(t, err)

			var currErr *parsererror.InvalidCurrencyError
			assert.True(t, errors.As(err, &currErr))
		})
	}
}

func TestCleanCurrencyRowNumberInMessage(t *testing.T) {
	_, err := CleanCurrency("not-a-number", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 7")
	assert.Contains(t, err.Error(), "not-a-number")

	_, err = CleanCurrency("not-a-number", 0)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "row")
}
