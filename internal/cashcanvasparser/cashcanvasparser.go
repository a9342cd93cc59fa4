// Package cashcanvasparser decodes the application's own CSV export format,
// used for re-importing transactions after bulk editing.
package cashcanvasparser

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"cashcanvas/ledger/internal/common"
	"cashcanvas/ledger/internal/dateutils"
	"cashcanvas/ledger/internal/models"
	"cashcanvas/ledger/internal/parsererror"
	"cashcanvas/ledger/internal/textutils"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const institutionLabel = "CashCanvas Export"

var expectedHeaders = map[string]string{
	"date":             "Date",
	"description":      "Description",
	"amount":           "Amount",
	"account":          "Account",
	"cost_center":      "Cost Center",
	"spend_categories": "Spend Categories",
	"notes":            "Notes",
}

// Parse walks a CashCanvas export CSV, returning the decoded transactions and
// one RowError per failed data row. Amounts are already in the ledger sign
// convention and are taken as-is. Dates may be ISO (as exported) or MM/DD/YYYY
// (common after hand editing in a spreadsheet).
func Parse(rows [][]string) ([]models.Transaction, []*parsererror.RowError, error) {
	headers, err := common.ResolveHeaders(rows, expectedHeaders, institutionLabel)
	if err != nil {
		return nil, nil, err
	}

	var transactions []models.Transaction
	var rowErrs []*parsererror.RowError
	for i, row := range rows[1:] {
		rowNum := i + 2
		tx, err := convertRow(row, headers)
		if err != nil {
			rowErrs = append(rowErrs, parsererror.NewRowError(rowNum, err))
			continue
		}
		transactions = append(transactions, tx)
	}

	log.WithFields(logrus.Fields{
		"count":  len(transactions),
		"errors": len(rowErrs),
	}).Info("Parsed CashCanvas CSV rows")
	return transactions, rowErrs, nil
}

func convertRow(row []string, headers map[string]int) (models.Transaction, error) {
	date, err := dateutils.ParseFlexibleDate(common.Field(row, headers["date"]))
	if err != nil {
		return models.Transaction{}, err
	}

	description := strings.TrimSpace(common.Field(row, headers["description"]))
	if description == "" {
		return models.Transaction{}, fmt.Errorf("description is empty")
	}

	rawAmount := strings.TrimSpace(common.Field(row, headers["amount"]))
	if rawAmount == "" {
		return models.Transaction{}, fmt.Errorf("amount is empty")
	}
	amount, err := textutils.CleanCurrency(rawAmount, 0)
	if err != nil {
		return models.Transaction{}, err
	}

	account := strings.TrimSpace(common.Field(row, headers["account"]))
	if account == "" {
		return models.Transaction{}, fmt.Errorf("account is empty")
	}

	// A literal "Uncategorized" in the file means the tag was absent; it comes
	// back via the default so the round trip is stable.
	costCenter := strings.TrimSpace(common.Field(row, headers["cost_center"]))
	if strings.EqualFold(costCenter, models.Uncategorized) {
		costCenter = ""
	}

	tx := models.Transaction{
		Date:            date,
		Description:     description,
		Amount:          amount,
		Account:         account,
		CostCenter:      models.CostCenter{Name: models.NormalizeCostCenterName(costCenter)},
		SpendCategories: models.SpendCategoriesFromNames(parseCategories(common.Field(row, headers["spend_categories"]))),
		Notes:           strings.TrimSpace(common.Field(row, headers["notes"])),
	}
	if errs := tx.Validate(); len(errs) > 0 {
		return models.Transaction{}, fmt.Errorf("validation failed: %s", models.JoinFieldErrors(errs))
	}
	return tx, nil
}

// parseCategories splits the comma-separated Spend Categories cell, trimming
// each name and dropping blanks. Duplicates collapse to first occurrence.
func parseCategories(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, models.Uncategorized) {
		return models.NormalizeCategoryNames(nil)
	}
	return models.NormalizeCategoryNames(strings.Split(trimmed, ","))
}
