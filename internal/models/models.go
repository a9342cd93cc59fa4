// Package models provides the canonical ledger data structures.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the fallback name applied to transactions that carry no
// cost center or spend categories.
const Uncategorized = "Uncategorized"

// CostCenter is the primary single-valued grouping tag for a transaction,
// typically the bank's own category.
type CostCenter struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SpendCategory is a secondary multi-valued user tag for a transaction.
type SpendCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transaction is a ledger entry with the canonical sign convention:
// expenses are negative, income is positive, regardless of how the source
// bank format encodes direction.
type Transaction struct {
	ID              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Account         string          `json:"account"`
	CostCenter      CostCenter      `json:"cost_center"`
	SpendCategories []SpendCategory `json:"spend_categories"`
	Notes           string          `json:"notes,omitempty"`
}

// CategoryNames returns the spend category names in order.
func (t *Transaction) CategoryNames() []string {
	names := make([]string, 0, len(t.SpendCategories))
	for _, c := range t.SpendCategories {
		names = append(names, c.Name)
	}
	return names
}

// IsExpense reports whether the transaction is money going out.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the transaction is money coming in.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}
