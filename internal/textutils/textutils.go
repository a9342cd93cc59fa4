// Package textutils provides string cleaning helpers shared by the CSV parsers.
package textutils

import (
	"strings"

	"github.com/shopspring/decimal"

	"cashcanvas/ledger/internal/parsererror"
)

// CleanHeader strips BOM variants and every kind of whitespace from a header
// string. It is used only for header comparison, never for data values, so the
// aggressive whitespace removal is safe.
func CleanHeader(header string) string {
	if header == "" {
		return ""
	}
	cleaned := strings.NewReplacer("\uFEFF", "", "\uFFFE", "").Replace(header)
	return strings.Join(strings.Fields(cleaned), "")
}

// CleanCurrency strips dollar signs, thousand separators, and whitespace from a
// monetary value and parses the remainder as a decimal. rowNum is included in
// the error when positive.
func CleanCurrency(value string, rowNum int) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, &parsererror.InvalidCurrencyError{Value: value, Row: rowNum}
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '$' || r == ',':
			return -1
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(value))

	if cleaned == "" {
		return decimal.Zero, &parsererror.InvalidCurrencyError{Value: value, Row: rowNum}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &parsererror.InvalidCurrencyError{Value: value, Row: rowNum}
	}
	return amount, nil
}
