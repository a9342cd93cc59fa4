package cashcanvasparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashcanvas/ledger/internal/models"
)

var header = []string{"Date", "Description", "Amount", "Account", "Cost Center", "Spend Categories", "Notes"}

func TestParse(t *testing.T) {
	rows := [][]string{
		header,
		{"2026-03-05", "GROCERY RUN", "-84.20", "Schwab Checking", "Food", "Groceries, Household", "weekly"},
		{"03/06/2026", "PAYROLL", "2500.00", "Schwab Checking", "Income", "Salary", ""},
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, transactions, 2)

	groceries := transactions[0]
	assert.Equal(t, "2026-03-05", groceries.Date.Format("2006-01-02"))
	assert.Equal(t, "-84.2", groceries.Amount.String())
	assert.Equal(t, "Schwab Checking", groceries.Account)
	assert.Equal(t, "Food", groceries.CostCenter.Name)
	assert.Equal(t, []string{"Groceries", "Household"}, groceries.CategoryNames())
	assert.Equal(t, "weekly", groceries.Notes)

	// US date form is accepted alongside ISO.
	payroll := transactions[1]
	assert.Equal(t, "2026-03-06", payroll.Date.Format("2006-01-02"))
}

func TestParseCategoryNormalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"duplicates collapse", "Food, Food, Travel", []string{"Food", "Travel"}},
		{"blanks dropped", " , Food ,, ", []string{"Food"}},
		{"empty defaults", "", []string{models.Uncategorized}},
		{"literal uncategorized", "uncategorized", []string{models.Uncategorized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{
				header,
				{"2026-03-05", "X", "1.00", "Checking", "Food", tt.raw, ""},
			}

			transactions, rowErrs, err := Parse(rows)
			require.NoError(t, err)
			require.Empty(t, rowErrs)
			require.Len(t, transactions, 1)
			assert.Equal(t, tt.want, transactions[0].CategoryNames())
		})
	}
}

func TestParseUncategorizedCostCenter(t *testing.T) {
	rows := [][]string{
		header,
		{"2026-03-05", "X", "1.00", "Checking", "UNCATEGORIZED", "", ""},
		{"2026-03-06", "Y", "1.00", "Checking", "", "", ""},
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, transactions, 2)
	assert.Equal(t, models.Uncategorized, transactions[0].CostCenter.Name)
	assert.Equal(t, models.Uncategorized, transactions[1].CostCenter.Name)
}

func TestParseMissingAccount(t *testing.T) {
	rows := [][]string{
		header,
		{"2026-03-05", "X", "1.00", "", "Food", "", ""},
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	assert.Empty(t, transactions)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "account is empty")
}
