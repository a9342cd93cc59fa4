package schwabparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashcanvas/ledger/internal/models"
)

var header = []string{"Date", "Status", "Type", "CheckNumber", "Description", "Withdrawal", "Deposit", "RunningBalance"}

func row(date, description, withdrawal, deposit string) []string {
	return []string{date, "Posted", "ACH", "", description, withdrawal, deposit, ""}
}

func TestParse(t *testing.T) {
	rows := [][]string{
		header,
		row("02/01/2026", "RENT PAYMENT", "$1,200.00", ""),
		row("02/03/2026", "PAYROLL", "", "2500.00"),
	}

	transactions, rowErrs, err := Parse(rows)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, transactions, 2)

	rent := transactions[0]
	assert.Equal(t, "-1200", rent.Amount.String())
	assert.Equal(t, "Schwab Checking", rent.Account)
	assert.Equal(t, models.Uncategorized, rent.CostCenter.Name)
	assert.Equal(t, []string{models.Uncategorized}, rent.CategoryNames())

	payroll := transactions[1]
	assert.Equal(t, "2500", payroll.Amount.String())
	assert.True(t, payroll.IsIncome())
}

func TestParseDirectionColumns(t *testing.T) {
	tests := []struct {
		name       string
		withdrawal string
		deposit    string
		wantErr    string
	}{
		{"both populated", "10.00", "10.00", "both Withdrawal and Deposit are populated"},
		{"both empty", "", "", "both Withdrawal and Deposit are empty"},
		{"bad withdrawal", "abc", "", "invalid currency value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]string{
				header,
				row("02/01/2026", "SOMETHING", tt.withdrawal, tt.deposit),
			}

			transactions, rowErrs, err := Parse(rows)
			require.NoError(t, err)
			assert.Empty(t, transactions)
			require.Len(t, rowErrs, 1)
			assert.Equal(t, 2, rowErrs[0].Row)
			assert.Contains(t, rowErrs[0].Reason, tt.wantErr)
		})
	}
}
