package api

import (
	"strconv"
	"strings"

	"github.com/corpindex/company-search/model"
)

// ValidationError represents a validation error with field context.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCompanies checks a batch of companies before indexing. Row-level
// analysis errors are still possible later; this catches the shape problems
// worth rejecting the whole request for.
func ValidateCompanies(companies []model.Company) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(companies) == 0 {
		result.AddError("companies", "Company list cannot be empty")
		return result
	}

	seen := make(map[int64]bool, len(companies))
	for i, company := range companies {
		prefix := "companies[" + strconv.Itoa(i) + "]"
		if company.ID <= 0 {
			result.AddError(prefix+".id", "Company ID must be a positive integer")
		} else if seen[company.ID] {
			result.AddError(prefix+".id",
				"Duplicate company ID "+strconv.FormatInt(company.ID, 10)+" in request")
		}
		seen[company.ID] = true

		if strings.TrimSpace(company.Name) == "" {
			result.AddError(prefix+".name", "Company name cannot be empty")
		}
	}
	return result
}
