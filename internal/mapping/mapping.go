// Package mapping declares, per document field, how it is indexed: as
// analyzed full text, as an exact-match keyword, or both via a sub-field
// projection with a maximum stored length.
package mapping

import (
	"unicode/utf8"

	"github.com/corpindex/company-search/internal/analysis"
	"github.com/corpindex/company-search/internal/analysis/rules"
	"github.com/corpindex/company-search/internal/errors"
	"github.com/corpindex/company-search/model"
)

// SemanticType says whether a field is analyzed full text or an exact value.
type SemanticType string

const (
	FullText SemanticType = "full_text"
	Exact    SemanticType = "exact"
)

// SubField is a secondary exact-match projection of a full-text field.
// Values longer than MaxLength (in characters) are not truncated and not
// rejected: they are simply excluded from the sub-field while remaining
// fully indexed in the full-text field.
type SubField struct {
	Name      string       `json:"name" yaml:"name"`
	Type      SemanticType `json:"type" yaml:"type"`
	MaxLength int          `json:"max_length" yaml:"max_length"`
}

// FieldMapping configures one document field.
type FieldMapping struct {
	Name      string       `json:"name" yaml:"name"`
	Type      SemanticType `json:"type" yaml:"type"`
	Analyzer  string       `json:"analyzer,omitempty" yaml:"analyzer"`
	SubFields []SubField   `json:"sub_fields,omitempty" yaml:"sub_fields"`
}

// DefaultFields is the company index schema.
func DefaultFields() []FieldMapping {
	return []FieldMapping{
		{Name: model.FieldID, Type: Exact},
		{Name: model.FieldCountry, Type: FullText, Analyzer: rules.AnalyzerStandard,
			SubFields: []SubField{{Name: "keyword", Type: Exact, MaxLength: 100}}},
		{Name: model.FieldIndustry, Type: FullText, Analyzer: rules.AnalyzerStandard,
			SubFields: []SubField{{Name: "keyword", Type: Exact, MaxLength: 256}}},
		{Name: model.FieldLinkedinURL, Type: Exact},
		{Name: model.FieldLocality, Type: FullText, Analyzer: rules.AnalyzerLocality,
			SubFields: []SubField{{Name: "keyword", Type: Exact, MaxLength: 256}}},
		{Name: model.FieldName, Type: FullText, Analyzer: rules.AnalyzerName},
		{Name: model.FieldDomain, Type: Exact},
	}
}

// AnalyzedField is the indexable result of one field of one document.
type AnalyzedField struct {
	Field string
	// Stream is the token graph for full-text fields, nil for exact fields.
	Stream analysis.Stream
	// Exact is the raw value for exact fields, "" otherwise.
	Exact string
	// SubFields holds the raw value per eligible sub-field; over-length
	// values are absent here even though they stay in Stream.
	SubFields map[string]string
}

// Engine resolves a field's analyzer by its mapping and turns documents into
// indexable field values. Built once at startup; read-only afterwards.
type Engine struct {
	registry  *analysis.Registry
	fields    []FieldMapping
	analyzers map[string]*analysis.Analyzer
}

// NewEngine validates every analyzer reference against the registry. An
// unknown reference is a fatal configuration error, never a per-document one.
func NewEngine(registry *analysis.Registry, fields []FieldMapping) (*Engine, error) {
	e := &Engine{
		registry:  registry,
		fields:    fields,
		analyzers: make(map[string]*analysis.Analyzer, len(fields)),
	}
	for _, fm := range fields {
		if fm.Type != FullText {
			continue
		}
		analyzer, ok := registry.Get(fm.Analyzer)
		if !ok {
			return nil, errors.NewUnknownAnalyzerError(fm.Name, fm.Analyzer)
		}
		e.analyzers[fm.Name] = analyzer
	}
	return e, nil
}

// Fields returns the configured field mappings.
func (e *Engine) Fields() []FieldMapping { return e.fields }

// AnalyzerFor resolves the analyzer of a full-text field.
func (e *Engine) AnalyzerFor(field string) (*analysis.Analyzer, bool) {
	a, ok := e.analyzers[field]
	return a, ok
}

// AnalyzeField runs one field value through its configured pipeline.
func (e *Engine) AnalyzeField(fm FieldMapping, value string) AnalyzedField {
	out := AnalyzedField{Field: fm.Name}

	if fm.Type == Exact {
		out.Exact = value
		return out
	}

	out.Stream = e.analyzers[fm.Name].Analyze(value)
	for _, sub := range fm.SubFields {
		if value == "" {
			continue
		}
		if utf8.RuneCountInString(value) > sub.MaxLength {
			continue
		}
		if out.SubFields == nil {
			out.SubFields = make(map[string]string, len(fm.SubFields))
		}
		out.SubFields[sub.Name] = value
	}
	return out
}

// AnalyzeDocument turns a company into its indexable field values. A
// malformed document is rejected with a descriptive error and no side
// effects; it never mutates rule state.
func (e *Engine) AnalyzeDocument(company *model.Company) ([]AnalyzedField, error) {
	if company == nil {
		return nil, errors.NewValidationError("", "company cannot be nil")
	}
	if company.ID <= 0 {
		return nil, errors.NewValidationError(model.FieldID, "must be a positive integer")
	}
	if company.Name == "" {
		return nil, errors.NewValidationError(model.FieldName, "cannot be empty")
	}

	analyzed := make([]AnalyzedField, 0, len(e.fields))
	for _, fm := range e.fields {
		analyzed = append(analyzed, e.AnalyzeField(fm, company.FieldValue(fm.Name)))
	}
	return analyzed, nil
}
