package model

// CompanyUpdate is a partial update of an existing company. Nil fields are
// left untouched; set fields overwrite, including explicit empty strings.
type CompanyUpdate struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name,omitempty"`
	Country     *string `json:"country,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Locality    *string `json:"locality,omitempty"`
	LinkedinURL *string `json:"linkedin_url,omitempty"`
	Domain      *string `json:"domain,omitempty"`
}

// Apply merges the update into an existing company.
func (u *CompanyUpdate) Apply(company Company) Company {
	if u.Name != nil {
		company.Name = *u.Name
	}
	if u.Country != nil {
		company.Country = *u.Country
	}
	if u.Industry != nil {
		company.Industry = *u.Industry
	}
	if u.Locality != nil {
		company.Locality = *u.Locality
	}
	if u.LinkedinURL != nil {
		company.LinkedinURL = *u.LinkedinURL
	}
	if u.Domain != nil {
		company.Domain = *u.Domain
	}
	return company
}

// BulkResult reports the outcome of a bulk operation. A failed row never
// aborts the batch; its error message is recorded against the company ID.
type BulkResult struct {
	Succeeded int              `json:"succeeded"`
	Errors    map[int64]string `json:"errors,omitempty"`
}

// NewBulkResult returns an empty result ready to record outcomes.
func NewBulkResult() *BulkResult {
	return &BulkResult{Errors: make(map[int64]string)}
}

// RecordError notes a per-row failure.
func (r *BulkResult) RecordError(companyID int64, message string) {
	r.Errors[companyID] = message
}

// Failed returns the number of rows that did not succeed.
func (r *BulkResult) Failed() int { return len(r.Errors) }
