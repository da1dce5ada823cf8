// Package rules holds the process-wide rule tables (stopwords, synonym
// tables) and the named analyzer definitions built from them. Tables are
// loaded once at startup and never mutated afterwards; a malformed table
// aborts initialization before any document is processed.
package rules

import (
	"fmt"
	"strings"

	"github.com/corpindex/company-search/internal/analysis"
)

// ParseRecord parses one declarative synonym record of the form
//
//	{match text} => {replacement text(s), comma-separated}
//
// The left-hand side may list several comma-separated surface forms sharing
// the same expansions. A multi-word side is split into its token sequence.
func ParseRecord(record string) (analysis.SynonymRule, error) {
	parts := strings.SplitN(record, "=>", 2)
	if len(parts) != 2 {
		return analysis.SynonymRule{}, fmt.Errorf("malformed synonym record %q: missing '=>'", record)
	}

	var surfaceForms []string
	for _, surface := range strings.Split(parts[0], ",") {
		surface = strings.TrimSpace(surface)
		if surface != "" {
			surfaceForms = append(surfaceForms, surface)
		}
	}

	var expansions [][]string
	for _, expansion := range strings.Split(parts[1], ",") {
		words := strings.Fields(strings.ToLower(expansion))
		if len(words) > 0 {
			expansions = append(expansions, words)
		}
	}

	if len(surfaceForms) == 0 || len(expansions) == 0 {
		return analysis.SynonymRule{}, fmt.Errorf("malformed synonym record %q: empty side", record)
	}
	return analysis.SynonymRule{SurfaceForms: surfaceForms, Expansions: expansions}, nil
}

// ParseRecords parses a list of records, skipping blank lines and comments
// starting with '#'.
func ParseRecords(records []string) ([]analysis.SynonymRule, error) {
	parsed := make([]analysis.SynonymRule, 0, len(records))
	for _, record := range records {
		record = strings.TrimSpace(record)
		if record == "" || strings.HasPrefix(record, "#") {
			continue
		}
		rule, err := ParseRecord(record)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, rule)
	}
	return parsed, nil
}

// NewTable parses records and builds a validated synonym table.
func NewTable(name string, records []string) (*analysis.SynonymTable, error) {
	parsed, err := ParseRecords(records)
	if err != nil {
		return nil, fmt.Errorf("table '%s': %w", name, err)
	}
	return analysis.NewSynonymTable(name, parsed)
}
