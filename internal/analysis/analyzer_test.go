package analysis

import (
	"reflect"
	"testing"
)

func TestKeywordAnalyzer(t *testing.T) {
	keyword := NewKeywordAnalyzer("keyword")

	stream := keyword.Analyze("Acme Corp.")
	if len(stream) != 1 {
		t.Fatalf("expected a single slot, got %d", len(stream))
	}
	tok := stream[0].Alts[0][0]
	if tok.Text != "Acme Corp." {
		t.Errorf("keyword token = %q, want the whole string, case-sensitive", tok.Text)
	}
	if tok.StartOffset != 0 || tok.EndOffset != len("Acme Corp.") {
		t.Errorf("offsets = [%d,%d), want the full input", tok.StartOffset, tok.EndOffset)
	}
}

func TestKeywordAnalyzerEmptyInput(t *testing.T) {
	keyword := NewKeywordAnalyzer("keyword")
	if stream := keyword.Analyze(""); len(stream) != 0 {
		t.Errorf("expected empty stream for empty input, got %v", stream)
	}
}

func TestAnalyzerRunsCharFiltersBeforeTokenizer(t *testing.T) {
	strip, err := NewCharFilter(ReplaceRule{Pattern: `[./=()%&*!]`})
	if err != nil {
		t.Fatalf("NewCharFilter returned error: %v", err)
	}
	table, err := NewSynonymTable("company_suffixes", []SynonymRule{
		{SurfaceForms: []string{"corp"}, Expansions: [][]string{{"corporation"}}},
	})
	if err != nil {
		t.Fatalf("NewSynonymTable returned error: %v", err)
	}

	a := NewAnalyzer("name_analyzer", []*CharFilter{strip},
		LowercaseFilter{}, NewSynonymFilter(table))

	// "Corp." must be stripped to "Corp" before tokenization so the synonym
	// rule can match it.
	stream := a.Analyze("Acme Corp.")
	want := []string{"acme", "corporation"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestRegistry(t *testing.T) {
	standard := NewAnalyzer("standard", nil, LowercaseFilter{})
	keyword := NewKeywordAnalyzer("keyword")

	registry, err := NewRegistry(standard, keyword)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	if _, ok := registry.Get("standard"); !ok {
		t.Error("expected 'standard' to be registered")
	}
	if _, ok := registry.Get("nope"); ok {
		t.Error("lookup of unknown analyzer should fail")
	}
	if got := len(registry.Names()); got != 2 {
		t.Errorf("Names() returned %d entries, want 2", got)
	}
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	a := NewKeywordAnalyzer("keyword")
	b := NewKeywordAnalyzer("keyword")
	if _, err := NewRegistry(a, b); err == nil {
		t.Error("expected error for duplicate analyzer name")
	}
}
