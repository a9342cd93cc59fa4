// Package schwabparser decodes Schwab checking account CSV exports into
// canonical ledger transactions.
package schwabparser

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

const institutionLabel = "Schwab Checking"

// AccountName is the account every Schwab transaction is booked under.
const AccountName = "Schwab Checking"

// The export also carries Status, Type, CheckNumber, and RunningBalance
// columns; they are not required and are ignored.
var expectedHeaders = map[string]string{
	"date":        "Date",
	"description": "Description",
	"withdrawal":  "Withdrawal",
	"deposit":     "Deposit",
}

// Parse walks a Schwab checking CSV, returning the decoded transactions and
// one RowError per failed data row. Schwab splits direction into separate
// Withdrawal and Deposit columns; exactly one must be populated. The export
// carries no categories, so the cost center defaults to Uncategorized.
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
	}).Info("Parsed Schwab CSV rows")
	return transactions, rowErrs, nil
}

func convertRow(row []string, headers map[string]int) (models.Transaction, error) {
	date, err := dateutils.ParseUSDate(common.Field(row, headers["date"]))
	if err != nil {
		return models.Transaction{}, err
	}

	description := strings.TrimSpace(common.Field(row, headers["description"]))
	if description == "" {
		return models.Transaction{}, fmt.Errorf("description is empty")
	}

	withdrawal := strings.TrimSpace(common.Field(row, headers["withdrawal"]))
	deposit := strings.TrimSpace(common.Field(row, headers["deposit"]))

	tx := models.Transaction{
		Date:            date,
		Description:     description,
		Account:         AccountName,
		CostCenter:      models.CostCenter{Name: models.Uncategorized},
		SpendCategories: models.SpendCategoriesFromNames(models.NormalizeCategoryNames(nil)),
	}

	switch {
	case withdrawal != "" && deposit != "":
		return models.Transaction{}, fmt.Errorf("both Withdrawal and Deposit are populated")
	case withdrawal != "":
		amount, err := textutils.CleanCurrency(withdrawal, 0)
		if err != nil {
			return models.Transaction{}, err
		}
		tx.Amount = amount.Neg()
	case deposit != "":
		amount, err := textutils.CleanCurrency(deposit, 0)
		if err != nil {
			return models.Transaction{}, err
		}
		tx.Amount = amount
	default:
		return models.Transaction{}, fmt.Errorf("both Withdrawal and Deposit are empty")
	}

	if errs := tx.Validate(); len(errs) > 0 {
		return models.Transaction{}, fmt.Errorf("validation failed: %s", models.JoinFieldErrors(errs))
	}
	return tx, nil
}
