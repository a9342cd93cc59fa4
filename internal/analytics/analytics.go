// Package analytics computes spending summaries over a filtered transaction
// list: totals, monthly and per-tag breakdowns, and a running balance
// timeline. Results are recomputed on every request and never persisted.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"cashcanvas/ledger/internal/dateutils"
	"cashcanvas/ledger/internal/models"
)

// BalanceTimelinePoint is one step of the chronological running balance.
type BalanceTimelinePoint struct {
	Date           string          `json:"date"`
	Balance        decimal.Decimal `json:"balance"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	CostCenterName string          `json:"cost_center_name"`
}

// MonthlySpending aggregates one YYYY-MM bucket. ByCostCenter holds the
// expense subtotal per cost center for breakdown tooltips.
type MonthlySpending struct {
	Month            string                     `json:"month"`
	Total            decimal.Decimal            `json:"total"`
	ExpenseTotal     decimal.Decimal            `json:"expense_total"`
	IncomeTotal      decimal.Decimal            `json:"income_total"`
	TransactionCount int                        `json:"transaction_count"`
	ByCostCenter     map[string]decimal.Decimal `json:"by_cost_center"`
}

// CostCenterSpending aggregates all transactions sharing a cost center.
type CostCenterSpending struct {
	CostCenterID     int64           `json:"cost_center_id"`
	CostCenterName   string          `json:"cost_center_name"`
	Total            decimal.Decimal `json:"total"`
	ExpenseTotal     decimal.Decimal `json:"expense_total"`
	IncomeTotal      decimal.Decimal `json:"income_total"`
	TransactionCount int             `json:"transaction_count"`
}

// SpendCategoryStats aggregates all transactions tagged with a category.
// A transaction with N categories contributes its full amount to each.
type SpendCategoryStats struct {
	SpendCategoryID   int64           `json:"spend_category_id"`
	SpendCategoryName string          `json:"spend_category_name"`
	Total             decimal.Decimal `json:"total"`
	ExpenseTotal      decimal.Decimal `json:"expense_total"`
	IncomeTotal       decimal.Decimal `json:"income_total"`
	TransactionCount  int             `json:"transaction_count"`
}

// Result is the complete analytics structure, serializable directly to a
// response body.
type Result struct {
	TotalSpent           decimal.Decimal        `json:"total_spent"`
	TotalIncome          decimal.Decimal        `json:"total_income"`
	TotalCash            decimal.Decimal        `json:"total_cash"`
	TotalTransactions    int                    `json:"total_transactions"`
	TotalCostCenters     int                    `json:"total_cost_centers"`
	TotalSpendCategories int                    `json:"total_spend_categories"`
	AvgExpense           decimal.Decimal        `json:"avg_expense"`
	AvgIncome            decimal.Decimal        `json:"avg_income"`
	MonthlySpending      []MonthlySpending      `json:"monthly_spending"`
	CostCenterSpending   []CostCenterSpending   `json:"cost_center_spending"`
	SpendCategoryStats   []SpendCategoryStats   `json:"spend_category_stats"`
	BalanceTimeline      []BalanceTimelinePoint `json:"balance_timeline"`
}

func emptyResult() Result {
	return Result{
		MonthlySpending:    []MonthlySpending{},
		CostCenterSpending: []CostCenterSpending{},
		SpendCategoryStats: []SpendCategoryStats{},
		BalanceTimeline:    []BalanceTimelinePoint{},
	}
}

// Compute derives the full analytics structure from an already-filtered
// transaction list. The input order does not matter; the timeline is sorted
// internally by (date, id) so results are deterministic. An empty input
// yields the canonical all-zero result.
func Compute(transactions []models.Transaction) Result {
	if len(transactions) == 0 {
		return emptyResult()
	}

	result := emptyResult()
	result.TotalTransactions = len(transactions)

	var expenseSum, incomeSum decimal.Decimal
	var expenseCount, incomeCount int
	for _, t := range transactions {
		if t.IsExpense() {
			expenseSum = expenseSum.Add(t.Amount)
			expenseCount++
		} else if t.IsIncome() {
			incomeSum = incomeSum.Add(t.Amount)
			incomeCount++
		}
	}
	result.TotalSpent = expenseSum.Neg()
	result.TotalIncome = incomeSum
	if expenseCount > 0 {
		result.AvgExpense = expenseSum.Div(decimal.NewFromInt(int64(expenseCount)))
	}
	if incomeCount > 0 {
		result.AvgIncome = incomeSum.Div(decimal.NewFromInt(int64(incomeCount)))
	}

	result.MonthlySpending = computeMonthly(transactions)
	result.CostCenterSpending = computeCostCenters(transactions)
	result.SpendCategoryStats = computeCategories(transactions)
	result.TotalCostCenters = len(result.CostCenterSpending)
	result.TotalSpendCategories = len(result.SpendCategoryStats)

	result.BalanceTimeline = computeTimeline(transactions)
	// TotalCash is the final timeline balance. It must agree with the sum of
	// all amounts; the two are computed independently and tested for
	// consistency.
	result.TotalCash = result.BalanceTimeline[len(result.BalanceTimeline)-1].Balance

	return result
}

func computeMonthly(transactions []models.Transaction) []MonthlySpending {
	buckets := make(map[string]*MonthlySpending)
	for _, t := range transactions {
		key := dateutils.MonthKey(t.Date)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthlySpending{Month: key, ByCostCenter: make(map[string]decimal.Decimal)}
			buckets[key] = bucket
		}
		bucket.Total = bucket.Total.Add(t.Amount)
		bucket.TransactionCount++
		if t.IsExpense() {
			bucket.ExpenseTotal = bucket.ExpenseTotal.Add(t.Amount)
			bucket.ByCostCenter[t.CostCenter.Name] = bucket.ByCostCenter[t.CostCenter.Name].Add(t.Amount)
		} else {
			bucket.IncomeTotal = bucket.IncomeTotal.Add(t.Amount)
		}
	}

	months := make([]MonthlySpending, 0, len(buckets))
	for _, bucket := range buckets {
		months = append(months, *bucket)
	}
	// YYYY-MM keys sort chronologically.
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

func computeCostCenters(transactions []models.Transaction) []CostCenterSpending {
	buckets := make(map[int64]*CostCenterSpending)
	for _, t := range transactions {
		bucket, ok := buckets[t.CostCenter.ID]
		if !ok {
			bucket = &CostCenterSpending{CostCenterID: t.CostCenter.ID, CostCenterName: t.CostCenter.Name}
			buckets[t.CostCenter.ID] = bucket
		}
		bucket.Total = bucket.Total.Add(t.Amount)
		bucket.TransactionCount++
		if t.IsExpense() {
			bucket.ExpenseTotal = bucket.ExpenseTotal.Add(t.Amount)
		} else {
			bucket.IncomeTotal = bucket.IncomeTotal.Add(t.Amount)
		}
	}

	stats := make([]CostCenterSpending, 0, len(buckets))
	for _, bucket := range buckets {
		stats = append(stats, *bucket)
	}
	// Expenses are negative, so ascending order puts the biggest spenders
	// first. Ties break on id to keep the order stable.
	sort.Slice(stats, func(i, j int) bool {
		if c := stats[i].ExpenseTotal.Cmp(stats[j].ExpenseTotal); c != 0 {
			return c < 0
		}
		return stats[i].CostCenterID < stats[j].CostCenterID
	})
	return stats
}

func computeCategories(transactions []models.Transaction) []SpendCategoryStats {
	buckets := make(map[int64]*SpendCategoryStats)
	for _, t := range transactions {
		for _, cat := range t.SpendCategories {
			bucket, ok := buckets[cat.ID]
			if !ok {
				bucket = &SpendCategoryStats{SpendCategoryID: cat.ID, SpendCategoryName: cat.Name}
				buckets[cat.ID] = bucket
			}
			bucket.Total = bucket.Total.Add(t.Amount)
			bucket.TransactionCount++
			if t.IsExpense() {
				bucket.ExpenseTotal = bucket.ExpenseTotal.Add(t.Amount)
			} else {
				bucket.IncomeTotal = bucket.IncomeTotal.Add(t.Amount)
			}
		}
	}

	stats := make([]SpendCategoryStats, 0, len(buckets))
	for _, bucket := range buckets {
		stats = append(stats, *bucket)
	}
	sort.Slice(stats, func(i, j int) bool {
		if c := stats[i].ExpenseTotal.Cmp(stats[j].ExpenseTotal); c != 0 {
			return c < 0
		}
		return stats[i].SpendCategoryID < stats[j].SpendCategoryID
	})
	return stats
}

func computeTimeline(transactions []models.Transaction) []BalanceTimelinePoint {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	// Id breaks same-day ties so the walk is deterministic.
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	var balance decimal.Decimal
	timeline := make([]BalanceTimelinePoint, 0, len(ordered))
	for _, t := range ordered {
		balance = balance.Add(t.Amount)
		timeline = append(timeline, BalanceTimelinePoint{
			Date:           dateutils.ToISODate(t.Date),
			Balance:        balance,
			Description:    t.Description,
			Amount:         t.Amount,
			CostCenterName: t.CostCenter.Name,
		})
	}
	return timeline
}
