package discoverparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashcanvas/ledger/internal/models"
	"cashcanvas/ledger/internal/parsererror"
)

var header = []string{"Trans. Date", "Description", "Amount", "Category"}

func TestParse(t *testing.T) {
	rows := [][]string{
		header,
		{"01/15/2026", "STARBUCKS", "12.50", "Restaurants"},
		{"01/16/2026", "PAYMENT THANK YOU", "-20.00", ""},
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, transactions, 2)

	// Discover CSV positive = expense, so the ledger amount is negated.
	charge := transactions[0]
	assert.Equal(t, "-12.5", charge.Amount.String())
	assert.Equal(t, "STARBUCKS", charge.Description)
	assert.Equal(t, "Discover", charge.Account)
	assert.Equal(t, "Restaurants", charge.CostCenter.Name)
	assert.Equal(t, []string{models.Uncategorized}, charge.CategoryNames())

	credit := transactions[1]
	assert.Equal(t, "20", credit.Amount.String())
	assert.Equal(t, models.Uncategorized, credit.CostCenter.Name)
}

func TestParseCollectsRowErrorsAndContinues(t *testing.T) {
	rows := [][]string{
		header,
		{"01/15/2026", "OK ROW", "5.00", "Food"},
		{"", "MISSING DATE", "5.00", "Food"},
		{"01/17/2026", "", "5.00", "Food"},
		{"01/18/2026", "BAD AMOUNT", "abc", "Food"},
		{"01/19/2026", "ALSO OK", "1.00", "Food"},
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	require.Len(t, rowErrs, 3)

	// Row numbers are offset by the header row.
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, 4, rowErrs[1].Row)
	assert.Equal(t, 5, rowErrs[2].Row)
	assert.Contains(t, rowErrs[1].Reason, "description is empty")
}

func TestParseHeaderMismatch(t *testing.T) {
	rows := [][]string{
		{"Date", "Description", "Amount"},
		{"01/15/2026", "STARBUCKS", "12.50"},
	}

	_, _, err := Parse(rows)
	require.Error(t, err)

	var mismatch *parsererror.HeaderMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Contains(t, mismatch.Missing, "Trans. Date")
	assert.Contains(t, mismatch.Missing, "Category")
}

func TestParseEmptyFile(t *testing.T) {
	_, _, err := Parse(nil)

	var empty *parsererror.EmptyFileError
	assert.True(t, errors.As(err, &empty))
}

func TestParseShortRow(t *testing.T) {
	rows := [][]string{
		header,
		{"01/15/2026", "STARBUCKS"},
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	assert.Empty(t, transactions)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
}
