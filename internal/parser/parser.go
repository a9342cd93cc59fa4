// Package parser routes raw CSV contents to the correct institution parser
// and enforces the whole-batch validation contract.
package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"cashcanvas/ledger/internal/cashcanvasparser"
	"cashcanvas/ledger/internal/common"
	"cashcanvas/ledger/internal/discoverparser"
	"cashcanvas/ledger/internal/models"
	"cashcanvas/ledger/internal/parsererror"
	"cashcanvas/ledger/internal/schwabparser"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseFunc is the shape every institution parser exposes: decode all data
// rows, accumulating row errors instead of stopping at the first.
type ParseFunc func(rows [][]string) ([]models.Transaction, []*parsererror.RowError, error)

// Supported institution tags, matched case- and space-insensitively.
const (
	InstitutionDiscover       = "discover"
	InstitutionSchwab         = "schwab"
	InstitutionSchwabChecking = "schwab checking"
	InstitutionCashCanvas     = "cashcanvas"
)

var supported = []string{"'discover'", "'schwab'", "'cashcanvas'"}

// GetParser returns the parser for an institution tag.
func GetParser(institution string) (ParseFunc, error) {
	switch strings.ToLower(strings.TrimSpace(institution)) {
	case InstitutionDiscover:
		return discoverparser.Parse, nil
	case InstitutionSchwab, InstitutionSchwabChecking:
		return schwabparser.Parse, nil
	case InstitutionCashCanvas:
		return cashcanvasparser.Parse, nil
	default:
		return nil, &parsererror.UnknownInstitutionError{
			Institution: strings.ToLower(strings.TrimSpace(institution)),
			Supported:   supported,
		}
	}
}

// ParseCSV decodes a whole CSV file for the named institution. It returns
// either every transaction in the file or a single error: header mismatches
// and unknown institutions abort before any row is processed, and any row
// failure rejects the entire batch as a BatchError carrying the total error
// count and the first 20 row errors. A partial batch is never returned.
func ParseCSV(contents []byte, institution string) ([]models.Transaction, error) {
	parse, err := GetParser(institution)
	if err != nil {
		return nil, err
	}

	rows, err := common.ReadRows(contents)
	if err != nil {
		return nil, err
	}

	transactions, rowErrs, err := parse(rows)
	if err != nil {
		return nil, err
	}
	if len(rowErrs) > 0 {
		log.WithFields(logrus.Fields{
			"institution": institution,
			"errors":      len(rowErrs),
		}).Warn("Rejecting CSV batch after row validation failures")
		return nil, parsererror.NewBatchError(rowErrs)
	}

	log.WithFields(logrus.Fields{
		"institution": institution,
		"count":       len(transactions),
	}).Info("Parsed CSV batch")
	return transactions, nil
}
