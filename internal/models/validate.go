package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Field length limits for canonical transactions and tag names.
const (
	MaxDescriptionLen = 200
	MaxAccountLen     = 50
	MaxNotesLen       = 200
	MaxNameLen        = 50
)

// Cost center names may contain a comma (Discover uses ones like
// "Restaurants, Bars"); spend category names may not, since commas separate
// categories in the CashCanvas export format.
var (
	costCenterNameRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-'/&,]+$`)
	categoryNameRe   = regexp.MustCompile(`^[a-zA-Z0-9\s\-'/&]+$`)
)

// FieldError describes a single failed validation check.
type FieldError struct {
	Field string
	Msg   string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NormalizeCostCenterName trims a free-text cost center name, substituting
// Uncategorized for a blank one.
func NormalizeCostCenterName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Uncategorized
	}
	return trimmed
}

// NormalizeCategoryNames trims each category name, drops blanks, and
// deduplicates while preserving first-seen order. An empty result becomes
// [Uncategorized].
func NormalizeCategoryNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return []string{Uncategorized}
	}
	return cleaned
}

// SpendCategoriesFromNames wraps normalized category names as SpendCategory
// values with unresolved ids. The persistence layer assigns ids on save.
func SpendCategoriesFromNames(names []string) []SpendCategory {
	categories := make([]SpendCategory, 0, len(names))
	for _, name := range names {
		categories = append(categories, SpendCategory{Name: name})
	}
	return categories
}

// Validate checks every schema constraint and returns the full list of
// failures rather than stopping at the first, so one corrective pass over a
// bad row fixes everything at once.
func (t *Transaction) Validate() []FieldError {
	var errs []FieldError

	if t.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Msg: "date is required"})
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Msg: "field cannot be empty or whitespace"})
	} else if len(t.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Msg: fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)})
	}
	if strings.TrimSpace(t.Account) == "" {
		errs = append(errs, FieldError{Field: "account", Msg: "field cannot be empty or whitespace"})
	} else if len(t.Account) > MaxAccountLen {
		errs = append(errs, FieldError{Field: "account", Msg: fmt.Sprintf("must be at most %d characters", MaxAccountLen)})
	}
	if len(t.Notes) > MaxNotesLen {
		errs = append(errs, FieldError{Field: "notes", Msg: fmt.Sprintf("must be at most %d characters", MaxNotesLen)})
	}

	if err := validateName("cost_center_name", t.CostCenter.Name, costCenterNameRe); err != nil {
		errs = append(errs, *err)
	}
	for _, cat := range t.SpendCategories {
		if err := validateName("spend_category_names", cat.Name, categoryNameRe); err != nil {
			errs = append(errs, *err)
		}
	}

	return errs
}

func validateName(field, name string, re *regexp.Regexp) *FieldError {
	if name == "" {
		return &FieldError{Field: field, Msg: "name cannot be empty"}
	}
	if len(name) > MaxNameLen {
		return &FieldError{Field: field, Msg: fmt.Sprintf("name must be at most %d characters", MaxNameLen)}
	}
	if !re.MatchString(name) {
		return &FieldError{Field: field, Msg: fmt.Sprintf("name '%s' contains invalid characters", name)}
	}
	return nil
}

// JoinFieldErrors flattens a validation failure list into one message.
func JoinFieldErrors(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
