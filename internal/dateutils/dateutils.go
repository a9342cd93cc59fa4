// Package dateutils provides the date parsing used by the institution parsers.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants for the supported bank exports.
const (
	DateLayoutISO = "2006-01-02" // YYYY-MM-DD
	DateLayoutUS  = "01/02/2006" // MM/DD/YYYY
)

// ParseUSDate parses a date in MM/DD/YYYY form, the format used by Discover
// and Schwab exports.
func ParseUSDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse(DateLayoutUS, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': expected MM/DD/YYYY", cleaned)
	}
	return t, nil
}

// ParseFlexibleDate parses a date trying ISO (YYYY-MM-DD) first and falling
// back to MM/DD/YYYY. CashCanvas exports write ISO dates, but re-imports of
// hand-edited files often carry the US form.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if t, err := time.Parse(DateLayoutISO, cleaned); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayoutUS, cleaned); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date '%s': expected YYYY-MM-DD or MM/DD/YYYY", cleaned)
}

// MonthKey returns the YYYY-MM bucket key for a date. Lexicographic order on
// these keys is chronological order.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
