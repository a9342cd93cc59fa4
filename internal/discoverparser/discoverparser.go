// Package discoverparser decodes Discover credit card CSV exports into
// canonical ledger transactions.
package discoverparser

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

const institutionLabel = "Discover"

// AccountName is the account every Discover transaction is booked under.
const AccountName = "Discover"

var expectedHeaders = map[string]string{
	"date":        "Trans. Date",
	"description": "Description",
	"amount":      "Amount",
	"category":    "Category",
}

// Parse walks a Discover CSV, returning the decoded transactions and one
// RowError per failed data row. Header problems abort before any row is
// processed; row failures never stop the pass.
//
// Discover inverts the ledger sign convention: a positive CSV amount is a
// charge (expense) and a negative one is a credit, so every amount is negated.
func Parse(rows [][]string) ([]models.Transaction, []*parsererror.RowError, error) {
	headers, err := common.ResolveHeaders(rows, expectedHeaders, institutionLabel)
	if err != nil {
		return nil, nil, err
	}

	var transactions []models.Transaction
	var rowErrs []*parsererror.RowError
	for i, row := range rows[1:] {
		rowNum := i + 2 // row 1 is the header
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
	}).Info("Parsed Discover CSV rows")
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

	rawAmount := strings.TrimSpace(common.Field(row, headers["amount"]))
	if rawAmount == "" {
		return models.Transaction{}, fmt.Errorf("amount is empty")
	}
	amount, err := textutils.CleanCurrency(rawAmount, 0)
	if err != nil {
		return models.Transaction{}, err
	}

	costCenter := models.NormalizeCostCenterName(common.Field(row, headers["category"]))

	tx := models.Transaction{
		Date:            date,
		Description:     description,
		Amount:          amount.Neg(),
		Account:         AccountName,
		CostCenter:      models.CostCenter{Name: costCenter},
		SpendCategories: models.SpendCategoriesFromNames(models.NormalizeCategoryNames(nil)),
	}
	if errs := tx.Validate(); len(errs) > 0 {
		return models.Transaction{}, fmt.Errorf("validation failed: %s", models.JoinFieldErrors(errs))
	}
	return tx, nil
}
