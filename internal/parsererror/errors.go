// Package parsererror defines the error types surfaced by the CSV import pipeline.
package parsererror

import (
	"fmt"
	"strings"
)

// RowErrorLimit is the maximum number of row errors included in a BatchError
// message. The total count is always reported.
const RowErrorLimit = 20

// EmptyFileError indicates the CSV had no header row at all.
type EmptyFileError struct {
	Institution string
}

func (e *EmptyFileError) Error() string {
	return "CSV file appears to be empty"
}

// HeaderMismatchError indicates the CSV header row does not match the expected
// column set for an institution. It lists every missing column, not just the
// first, along with everything that was actually found.
type HeaderMismatchError struct {
	Institution string
	Missing     []string
	Found       []string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("CSV file does not look like a %s export. Missing columns: [%s]. Found columns: [%s]",
		e.Institution, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// InvalidCurrencyError indicates a monetary field could not be parsed.
// Row is zero when the value was not tied to a specific CSV row.
type InvalidCurrencyError struct {
	Value string
	Row   int
}

func (e *InvalidCurrencyError) Error() string {
	msg := fmt.Sprintf("empty or invalid currency value: '%s'", e.Value)
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	return msg
}

// RowError records a single failed data row. Row numbering starts at 2
// because row 1 is the header.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// NewRowError builds a RowError from any underlying failure.
func NewRowError(row int, err error) *RowError {
	return &RowError{Row: row, Reason: err.Error()}
}

// BatchError aggregates every row failure from one parse pass. A non-empty
// row error list rejects the whole batch; nothing is ever partially accepted.
type BatchError struct {
	Count  int
	Errors []*RowError
}

func (e *BatchError) Error() string {
	shown := e.Errors
	if len(shown) > RowErrorLimit {
		shown = shown[:RowErrorLimit]
	}
	lines := make([]string, 0, len(shown))
	for _, re := range shown {
		lines = append(lines, re.Error())
	}
	return fmt.Sprintf("CSV validation failed (%d error(s)):\n%s", e.Count, strings.Join(lines, "\n"))
}

// NewBatchError wraps a full row error list, keeping the total count.
func NewBatchError(rowErrs []*RowError) *BatchError {
	return &BatchError{Count: len(rowErrs), Errors: rowErrs}
}

// UnknownInstitutionError indicates the requested institution tag has no parser.
type UnknownInstitutionError struct {
	Institution string
	Supported   []string
}

func (e *UnknownInstitutionError) Error() string {
	return fmt.Sprintf("unknown institution: '%s'. Supported institutions: %s",
		e.Institution, strings.Join(e.Supported, ", "))
}

// UnexpectedFailureError is the catch-all for non-validation faults such as
// I/O errors around the parse itself.
type UnexpectedFailureError struct {
	Op  string
	Err error
}

func (e *UnexpectedFailureError) Error() string {
	return fmt.Sprintf("%s: unexpected failure: %v", e.Op, e.Err)
}

func (e *UnexpectedFailureError) Unwrap() error {
	return e.Err
}
