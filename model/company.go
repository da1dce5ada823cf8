package model

import "strconv"

// Company is the document shape this engine indexes. One Company is built per
// source row by the ingestion layer; the analysis pipeline consumes it exactly
// once and holds no per-document state afterwards.
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Locality    string `json:"locality,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	Domain      string `json:"domain,omitempty"`
}

// Field names as they appear in the index schema and in API payloads.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldCountry     = "country"
	FieldIndustry    = "industry"
	FieldLocality    = "locality"
	FieldLinkedinURL = "linkedin_url"
	FieldDomain      = "domain"
)

// FieldValue returns the raw string value of a named field.
// Numeric fields are rendered in their canonical decimal form.
func (c *Company) FieldValue(field string) string {
	switch field {
	case FieldID:
		return strconv.FormatInt(c.ID, 10)
	case FieldName:
		return c.Name
	case FieldCountry:
		return c.Country
	case FieldIndustry:
		return c.Industry
	case FieldLocality:
		return c.Locality
	case FieldLinkedinURL:
		return c.LinkedinURL
	case FieldDomain:
		return c.Domain
	}
	return ""
}
