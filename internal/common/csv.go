// Package common provides the CSV plumbing shared by the institution parsers:
// raw record reading and header resolution.
package common

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

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

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReadRows decodes raw CSV bytes into records. The UTF-8 BOM some banks
// prepend is stripped, and ragged rows are allowed so that short rows surface
// as per-row validation errors instead of aborting the whole read.
func ReadRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		log.WithError(err).Error("Failed to read CSV records")
		return nil, &parsererror.UnexpectedFailureError{Op: "read csv", Err: err}
	}
	return rows, nil
}

// ResolveHeaders matches the first row of a CSV against an institution's
// expected columns. expected maps logical field names to display header names,
// e.g. {"date": "Trans. Date"}. Comparison is case-sensitive but tolerant of
// whitespace and BOM noise on both sides. The returned map resolves each
// logical name to its column index.
//
// A CSV with no rows at all fails with EmptyFileError. A CSV whose header row
// lacks required columns fails with HeaderMismatchError naming every missing
// column, so one edit fixes the file.
func ResolveHeaders(rows [][]string, expected map[string]string, institution string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, &parsererror.EmptyFileError{Institution: institution}
	}

	actual := rows[0]
	indexByClean := make(map[string]int, len(actual))
	found := make([]string, 0, len(actual))
	for i, h := range actual {
		trimmed := strings.TrimSpace(h)
		if trimmed == "" {
			continue
		}
		found = append(found, trimmed)
		clean := textutils.CleanHeader(h)
		if _, dup := indexByClean[clean]; !dup {
			indexByClean[clean] = i
		}
	}

	var missing []string
	mapping := make(map[string]int, len(expected))
	for logical, display := range expected {
		idx, ok := indexByClean[textutils.CleanHeader(display)]
		if !ok {
			missing = append(missing, display)
			continue
		}
		mapping[logical] = idx
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		log.WithFields(logrus.Fields{
			"institution": institution,
			"missing":     missing,
		}).Warn("CSV header validation failed")
		return nil, &parsererror.HeaderMismatchError{
			Institution: institution,
			Missing:     missing,
			Found:       found,
		}
	}
	return mapping, nil
}

// Field returns the value at idx, or "" when the row is too short. Short rows
// then fail the same empty-field checks as genuinely blank values.
func Field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
