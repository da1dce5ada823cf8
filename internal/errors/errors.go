package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrConfig is returned for any fatal configuration error detected at
	// startup (malformed rule table, unknown analyzer reference, ...).
	// No documents are processed once a config error has been raised.
	ErrConfig = errors.New("configuration error")

	// ErrCompanyNotFound is returned when a company document is not found
	ErrCompanyNotFound = errors.New("company not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// DuplicateSurfaceFormError reports a surface form declared twice within a
// single synonym table. Collisions across different tables are legal and are
// resolved by filter order; a duplicate within one table is always a bug.
type DuplicateSurfaceFormError struct {
	Table       string
	SurfaceForm string
}

func (e *DuplicateSurfaceFormError) Error() string {
	return fmt.Sprintf("synonym table '%s' declares surface form '%s' more than once", e.Table, e.SurfaceForm)
}

func (e *DuplicateSurfaceFormError) Is(target error) bool {
	return target == ErrConfig
}

// NewDuplicateSurfaceFormError creates a new DuplicateSurfaceFormError
func NewDuplicateSurfaceFormError(table, surfaceForm string) *DuplicateSurfaceFormError {
	return &DuplicateSurfaceFormError{Table: table, SurfaceForm: surfaceForm}
}

// CyclicExpansionError reports a synonym rule whose expansion contains its own
// surface form, which would re-trigger the rule indefinitely.
type CyclicExpansionError struct {
	Table       string
	SurfaceForm string
}

func (e *CyclicExpansionError) Error() string {
	return fmt.Sprintf("synonym table '%s': expansion of '%s' references itself", e.Table, e.SurfaceForm)
}

func (e *CyclicExpansionError) Is(target error) bool {
	return target == ErrConfig
}

// NewCyclicExpansionError creates a new CyclicExpansionError
func NewCyclicExpansionError(table, surfaceForm string) *CyclicExpansionError {
	return &CyclicExpansionError{Table: table, SurfaceForm: surfaceForm}
}

// UnknownAnalyzerError reports a field mapping that references an analyzer
// name nobody registered. Raised at startup, never per document.
type UnknownAnalyzerError struct {
	Field    string
	Analyzer string
}

func (e *UnknownAnalyzerError) Error() string {
	return fmt.Sprintf("field '%s' references unknown analyzer '%s'", e.Field, e.Analyzer)
}

func (e *UnknownAnalyzerError) Is(target error) bool {
	return target == ErrConfig
}

// NewUnknownAnalyzerError creates a new UnknownAnalyzerError
func NewUnknownAnalyzerError(field, analyzer string) *UnknownAnalyzerError {
	return &UnknownAnalyzerError{Field: field, Analyzer: analyzer}
}

// CompanyNotFoundError represents a company not found error with context
type CompanyNotFoundError struct {
	CompanyID int64
}

func (e *CompanyNotFoundError) Error() string {
	return fmt.Sprintf("company with ID %d not found", e.CompanyID)
}

func (e *CompanyNotFoundError) Is(target error) bool {
	return target == ErrCompanyNotFound
}

// NewCompanyNotFoundError creates a new CompanyNotFoundError
func NewCompanyNotFoundError(companyID int64) *CompanyNotFoundError {
	return &CompanyNotFoundError{CompanyID: companyID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
