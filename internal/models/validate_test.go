package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCostCenterName(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"Groceries", "Groceries"},
		{"  Groceries  ", "Groceries"},
		{"", Uncategorized},
		{"   ", Uncategorized},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, NormalizeCostCenterName(tt.input))
	}
}

func TestNormalizeCategoryNames(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		expect []string
	}{
		{"dedup preserves first-seen order", []string{"Food", "Food", "Travel"}, []string{"Food", "Travel"}},
		{"trims and drops blanks", []string{" Food ", "", "  ", "Travel"}, []string{"Food", "Travel"}},
		{"nil defaults", nil, []string{Uncategorized}},
		{"all blank defaults", []string{"", "  "}, []string{Uncategorized}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NormalizeCategoryNames(tt.input))
		})
	}
}

func validTransaction() Transaction {
	return Transaction{
		Date:            time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description:     "Coffee",
		Amount:          decimal.NewFromFloat(-4.50),
		Account:         "Discover",
		CostCenter:      CostCenter{Name: "Restaurants"},
		SpendCategories: []SpendCategory{{Name: Uncategorized}},
	}
}

func TestValidateOK(t *testing.T) {
	tx := validTransaction()
	assert.Empty(t, tx.Validate())
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Transaction)
		field  string
	}{
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, "date"},
		{"blank description", func(tx *Transaction) { tx.Description = "   " }, "description"},
		{"long description", func(tx *Transaction) { tx.Description = strings.Repeat("x", 201) }, "description"},
		{"blank account", func(tx *Transaction) { tx.Account = "" }, "account"},
		{"long account", func(tx *Transaction) { tx.Account = strings.Repeat("x", 51) }, "account"},
		{"long notes", func(tx *Transaction) { tx.Notes = strings.Repeat("x", 201) }, "notes"},
		{"empty cost center", func(tx *Transaction) { tx.CostCenter.Name = "" }, "cost_center_name"},
		{"long cost center", func(tx *Transaction) { tx.CostCenter.Name = strings.Repeat("x", 51) }, "cost_center_name"},
		{"cost center bad charset", func(tx *Transaction) { tx.CostCenter.Name = "Food <script>" }, "cost_center_name"},
		{"category with comma", func(tx *Transaction) { tx.SpendCategories = []SpendCategory{{Name: "a,b"}} }, "spend_category_names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			errs := tx.Validate()
			assert.NotEmpty(t, errs)
			assert.Contains(t, JoinFieldErrors(errs), tt.field)
		})
	}
}

func TestValidateCollectsAllFailures(t *testing.T) {
	tx := validTransaction()
	tx.Description = ""
	tx.Account = ""
	errs := tx.Validate()
	assert.Len(t, errs, 2)
}

func TestCostCenterNameAllowsComma(t *testing.T) {
	tx := validTransaction()
	tx.CostCenter.Name = "Restaurants, Bars"
	assert.Empty(t, tx.Validate())
}
