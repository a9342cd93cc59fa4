// Package export writes transactions in the CashCanvas CSV format. The output
// re-imports cleanly through the cashcanvas parser, which is how bulk edits
// round-trip through a spreadsheet.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"cashcanvas/ledger/internal/dateutils"
	"cashcanvas/ledger/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Row is one line of a CashCanvas export.
type Row struct {
	Date            string `csv:"Date"`
	Description     string `csv:"Description"`
	Amount          string `csv:"Amount"`
	Account         string `csv:"Account"`
	CostCenter      string `csv:"Cost Center"`
	SpendCategories string `csv:"Spend Categories"`
	Notes           string `csv:"Notes"`
}

// RowFromTransaction flattens a transaction into export form: ISO date,
// amount fixed to 2 decimals, categories comma-joined.
func RowFromTransaction(t models.Transaction) Row {
	return Row{
		Date:            dateutils.ToISODate(t.Date),
		Description:     t.Description,
		Amount:          t.Amount.StringFixed(2),
		Account:         t.Account,
		CostCenter:      t.CostCenter.Name,
		SpendCategories: strings.Join(t.CategoryNames(), ", "),
		Notes:           t.Notes,
	}
}

// WriteTransactions writes the transactions as CashCanvas CSV.
func WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	rows := make([]*Row, 0, len(transactions))
	for _, t := range transactions {
		row := RowFromTransaction(t)
		rows = append(rows, &row)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("error writing CashCanvas CSV: %w", err)
	}
	return nil
}

// WriteFile writes the transactions as CashCanvas CSV to a file.
func WriteFile(filePath string, transactions []models.Transaction) error {
	file, err := os.Create(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close export file")
		}
	}()

	if err := WriteTransactions(file, transactions); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":  filePath,
		"count": len(transactions),
	}).Info("Wrote CashCanvas export")
	return nil
}
