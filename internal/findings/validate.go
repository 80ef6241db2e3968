package findings

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E299).
const (
	ErrCategoryInvalid   = "E201" // category missing or not canonical
	ErrCategoryDuplicate = "E202" // category appears more than once
	ErrIssueEmpty        = "E203" // issue is required
	ErrEffectEmpty       = "E204" // every effect axis needs at least one entry
	ErrCanonicalSet      = "E205" // set must be exactly the canonical six
	ErrEntryEmpty        = "E206" // list entries must be non-blank
	ErrTriggersMissing   = "E207" // trigger metrics/baselines/reporting required
)

// ValidationError describes one invariant violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a finding set against the repository invariants.
// Returns all errors found (does not fail-fast).
func Validate(set []Finding) []ValidationError {
	var errs []ValidationError

	canonical := make(map[Category]bool)
	for _, c := range Canonical() {
		canonical[c] = true
	}
	seen := make(map[Category]bool)

	for i, f := range set {
		prefix := fmt.Sprintf("findings[%d]", i)

		switch {
		case strings.TrimSpace(string(f.Category)) == "":
			errs = append(errs, ValidationError{
				Field:   prefix + ".category",
				Message: "category is required",
				Code:    ErrCategoryInvalid,
			})
		case !canonical[f.Category]:
			errs = append(errs, ValidationError{
				Field:   prefix + ".category",
				Message: fmt.Sprintf("unknown category %q", f.Category),
				Code:    ErrCategoryInvalid,
			})
		case seen[f.Category]:
			errs = append(errs, ValidationError{
				Field:   prefix + ".category",
				Message: fmt.Sprintf("duplicate category %q", f.Category),
				Code:    ErrCategoryDuplicate,
			})
		}
		seen[f.Category] = true

		if strings.TrimSpace(f.Issue) == "" {
			errs = append(errs, ValidationError{
				Field:   prefix + ".issue",
				Message: "issue is required and must be non-empty",
				Code:    ErrIssueEmpty,
			})
		}

		for _, axis := range f.Effects.axes() {
			if len(axis.items) == 0 {
				errs = append(errs, ValidationError{
					Field:   prefix + ".effects." + axis.name,
					Message: "at least one effect is required",
					Code:    ErrEffectEmpty,
				})
			}
			errs = append(errs, blankEntries(prefix+".effects."+axis.name, axis.items)...)
		}

		errs = append(errs, blankEntries(prefix+".mitigations", f.Mitigations)...)
		errs = append(errs, blankEntries(prefix+".recommendations", f.Recommendations)...)
		errs = append(errs, blankEntries(prefix+".policy_links", f.PolicyLinks)...)
		errs = append(errs, blankEntries(prefix+".consent_clauses", f.ConsentClauses)...)

		if len(f.Triggers.Metrics) == 0 ||
			strings.TrimSpace(f.Triggers.Baselines) == "" ||
			strings.TrimSpace(f.Triggers.Reporting) == "" {
			errs = append(errs, ValidationError{
				Field:   prefix + ".triggers",
				Message: "triggers need metrics, baselines and reporting",
				Code:    ErrTriggersMissing,
			})
		}
	}

	if len(set) != len(Canonical()) {
		errs = append(errs, ValidationError{
			Field:   "findings",
			Message: fmt.Sprintf("expected %d findings, got %d", len(Canonical()), len(set)),
			Code:    ErrCanonicalSet,
		})
	} else {
		for _, c := range Canonical() {
			if !seen[c] {
				errs = append(errs, ValidationError{
					Field:   "findings",
					Message: fmt.Sprintf("missing canonical category %q", c),
					Code:    ErrCanonicalSet,
				})
			}
		}
	}

	return errs
}

func blankEntries(field string, items []string) []ValidationError {
	var errs []ValidationError
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "entry must be non-blank",
				Code:    ErrEntryEmpty,
			})
		}
	}
	return errs
}
