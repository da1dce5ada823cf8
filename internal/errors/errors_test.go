package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDuplicateSurfaceFormError(t *testing.T) {
	err := NewDuplicateSurfaceFormError("company_suffixes", "sa")

	if !errors.Is(err, ErrConfig) {
		t.Error("DuplicateSurfaceFormError should match ErrConfig")
	}
	expected := "synonym table 'company_suffixes' declares surface form 'sa' more than once"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCyclicExpansionError(t *testing.T) {
	err := NewCyclicExpansionError("us_states", "ca")

	if !errors.Is(err, ErrConfig) {
		t.Error("CyclicExpansionError should match ErrConfig")
	}
	if err.Table != "us_states" || err.SurfaceForm != "ca" {
		t.Errorf("unexpected fields: %+v", err)
	}
}

func TestUnknownAnalyzerError(t *testing.T) {
	err := NewUnknownAnalyzerError("locality", "locality_analyser")

	if !errors.Is(err, ErrConfig) {
		t.Error("UnknownAnalyzerError should match ErrConfig")
	}
	expected := "field 'locality' references unknown analyzer 'locality_analyser'"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCompanyNotFoundError(t *testing.T) {
	err := NewCompanyNotFoundError(12345)

	if !errors.Is(err, ErrCompanyNotFound) {
		t.Error("CompanyNotFoundError should match ErrCompanyNotFound")
	}
	if errors.Is(err, ErrConfig) {
		t.Error("CompanyNotFoundError should not match ErrConfig")
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("abc-123")

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("JobNotFoundError should match ErrJobNotFound")
	}
}

func TestValidationError(t *testing.T) {
	withField := NewValidationError("name", "cannot be empty")
	if withField.Error() != "validation error for field 'name': cannot be empty" {
		t.Errorf("unexpected message: %q", withField.Error())
	}

	withoutField := NewValidationError("", "no body provided")
	if withoutField.Error() != "validation error: no body provided" {
		t.Errorf("unexpected message: %q", withoutField.Error())
	}
	if !errors.Is(withoutField, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	err := fmt.Errorf("loading rule tables: %w", NewDuplicateSurfaceFormError("uk_regions", "nt"))
	if !errors.Is(err, ErrConfig) {
		t.Error("wrapped config error should still match ErrConfig")
	}

	var dup *DuplicateSurfaceFormError
	if !errors.As(err, &dup) {
		t.Fatal("errors.As should recover the typed error")
	}
	if dup.SurfaceForm != "nt" {
		t.Errorf("SurfaceForm = %q, want %q", dup.SurfaceForm, "nt")
	}
}
