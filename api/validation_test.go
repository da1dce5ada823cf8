package api

import (
	"testing"

	"github.com/corpindex/company-search/model"
)

func TestValidateCompanies(t *testing.T) {
	tests := []struct {
		name       string
		companies  []model.Company
		wantErrors int
	}{
		{
			name:       "valid batch",
			companies:  []model.Company{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}},
			wantErrors: 0,
		},
		{
			name:       "empty batch",
			companies:  nil,
			wantErrors: 1,
		},
		{
			name:       "non-positive ID",
			companies:  []model.Company{{ID: 0, Name: "Acme"}},
			wantErrors: 1,
		},
		{
			name:       "blank name",
			companies:  []model.Company{{ID: 1, Name: "   "}},
			wantErrors: 1,
		},
		{
			name:       "duplicate IDs",
			companies:  []model.Company{{ID: 1, Name: "Acme"}, {ID: 1, Name: "Globex"}},
			wantErrors: 1,
		},
		{
			name:       "multiple problems",
			companies:  []model.Company{{ID: -1, Name: ""}},
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCompanies(tt.companies)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("expected %d errors, got %d: %+v",
					tt.wantErrors, len(result.Errors), result.Errors)
			}
			if (tt.wantErrors == 0) != result.Valid {
				t.Errorf("Valid flag inconsistent with errors: %+v", result)
			}
		})
	}
}
