package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashcanvas/ledger/internal/models"
	"cashcanvas/ledger/internal/parser"
)

func sample() []models.Transaction {
	return []models.Transaction{
		{
			Date:            time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			Description:     "GROCERY RUN",
			Amount:          decimal.RequireFromString("-84.20"),
			Account:         "Schwab Checking",
			CostCenter:      models.CostCenter{ID: 1, Name: "Food"},
			SpendCategories: models.SpendCategoriesFromNames([]string{"Groceries", "Household"}),
			Notes:           "weekly",
		},
		{
			Date:            time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
			Description:     "PAYROLL",
			Amount:          decimal.RequireFromString("2500.00"),
			Account:         "Schwab Checking",
			CostCenter:      models.CostCenter{ID: 2, Name: models.Uncategorized},
			SpendCategories: models.SpendCategoriesFromNames(models.NormalizeCategoryNames(nil)),
		},
	}
}

func TestRowFromTransaction(t *testing.T) {
	row := RowFromTransaction(sample()[0])

	assert.Equal(t, "2026-03-05", row.Date)
	assert.Equal(t, "-84.20", row.Amount)
	assert.Equal(t, "Groceries, Household", row.SpendCategories)
	assert.Equal(t, "weekly", row.Notes)
}

func TestWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sample()))

	want := "Date,Description,Amount,Account,Cost Center,Spend Categories,Notes\n" +
		"2026-03-05,GROCERY RUN,-84.20,Schwab Checking,Food,\"Groceries, Household\",weekly\n" +
		"2026-03-06,PAYROLL,2500.00,Schwab Checking,Uncategorized,Uncategorized,\n"
	assert.Equal(t, want, buf.String())
}

func TestExportRoundTrip(t *testing.T) {
	transactions := sample()

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, transactions))

	parsed, err := parser.ParseCSV(buf.Bytes(), "cashcanvas")
	require.NoError(t, err)
	require.Len(t, parsed, len(transactions))

	for i, got := range parsed {
		want := transactions[i]
		assert.True(t, got.Date.Equal(want.Date), "date mismatch at %d", i)
		assert.Equal(t, want.Description, got.Description)
		assert.True(t, got.Amount.Equal(want.Amount), "amount mismatch at %d", i)
		assert.Equal(t, want.Account, got.Account)
		assert.Equal(t, want.CostCenter.Name, got.CostCenter.Name)
		assert.Equal(t, want.CategoryNames(), got.CategoryNames())
		assert.Equal(t, want.Notes, got.Notes)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, WriteFile(path, sample()))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "GROCERY RUN")
}
