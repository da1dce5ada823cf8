package analysis

import (
	"errors"
	"reflect"
	"testing"

	internalerrors "github.com/corpindex/company-search/internal/errors"
)

func analyze(t *testing.T, text string, filters ...TokenFilter) Stream {
	t.Helper()
	return Chain(filters).Apply(Tokenizer{}.Tokenize(text))
}

func mustTable(t *testing.T, name string, rules []SynonymRule) *SynonymTable {
	t.Helper()
	table, err := NewSynonymTable(name, rules)
	if err != nil {
		t.Fatalf("NewSynonymTable(%s) returned error: %v", name, err)
	}
	return table
}

func TestLowercaseFilter(t *testing.T) {
	stream := analyze(t, "Acme CORP", LowercaseFilter{})
	want := []string{"acme", "corp"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestStopwordFilterDeletesAndKeepsPositionGaps(t *testing.T) {
	stop := NewStopwordFilter("stop_en", StopwordList{Lang: "en", Words: []string{"the", "of"}})
	stream := analyze(t, "the acme corp", LowercaseFilter{}, stop)

	want := []string{"acme", "corp"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}

	// "the" occupied position 0; deletion renumbers nothing.
	if stream[0].Position != 1 || stream[1].Position != 2 {
		t.Errorf("positions = [%d, %d], want [1, 2]", stream[0].Position, stream[1].Position)
	}
}

func TestSynonymFilterSingleExpansion(t *testing.T) {
	table := mustTable(t, "company_suffixes", []SynonymRule{
		{SurfaceForms: []string{"corp"}, Expansions: [][]string{{"corporation"}}},
	})
	stream := analyze(t, "acme corp", LowercaseFilter{}, NewSynonymFilter(table))

	want := []string{"acme", "corporation"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}

	slot := stream[1]
	if slot.Surface != "corp" {
		t.Errorf("Surface = %q, want %q", slot.Surface, "corp")
	}
	if kind := slot.Alts[0][0].Kind; kind != TokenSynonym {
		t.Errorf("kind = %v, want synonym", kind)
	}
}

// An abbreviation with several expansions yields sibling alternatives at one
// position, not a concatenation.
func TestSynonymFilterMultiExpansionSiblings(t *testing.T) {
	table := mustTable(t, "company_suffixes", []SynonymRule{
		{SurfaceForms: []string{"sa"}, Expansions: [][]string{
			{"societe", "anonyme"},
			{"sociedade", "anonima"},
			{"spolka", "akcyjna"},
		}},
	})
	stream := analyze(t, "globex sa", LowercaseFilter{}, NewSynonymFilter(table))

	if len(stream) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(stream))
	}
	slot := stream[1]
	if len(slot.Alts) != 3 {
		t.Fatalf("expected 3 sibling alternatives, got %d", len(slot.Alts))
	}
	for _, alt := range slot.Alts {
		if len(alt) != 2 {
			t.Errorf("alternative %v should be a two-token sequence", alt)
		}
		for _, tok := range alt {
			if tok.Position != slot.Position {
				t.Errorf("token %v does not share the slot position %d", tok, slot.Position)
			}
		}
	}
}

func TestSynonymFilterLongestMatchWins(t *testing.T) {
	table := mustTable(t, "regions", []SynonymRule{
		{SurfaceForms: []string{"new york"}, Expansions: [][]string{{"nyc"}}},
		{SurfaceForms: []string{"new"}, Expansions: [][]string{{"novel"}}},
	})
	stream := analyze(t, "new york", LowercaseFilter{}, NewSynonymFilter(table))

	if len(stream) != 1 {
		t.Fatalf("expected the multi-word rule to consume both tokens, got %d slots", len(stream))
	}
	if stream[0].Surface != "new york" {
		t.Errorf("Surface = %q, want %q", stream[0].Surface, "new york")
	}
	want := []string{"nyc"}
	if got := stream[0].Alts[0]; len(got) != 1 || got[0].Text != want[0] {
		t.Errorf("expansion = %v, want %v", got, want)
	}
}

func TestSynonymFilterPassThroughOnNoMatch(t *testing.T) {
	table := mustTable(t, "empty", nil)
	stream := analyze(t, "acme corp", LowercaseFilter{}, NewSynonymFilter(table))

	want := []string{"acme", "corp"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

// Once a run has been consumed by an earlier filter, later filters only see
// the replacement tokens. Swapping the chain order changes the result.
func TestChainedSynonymFiltersOrderSensitivity(t *testing.T) {
	canadian := mustTable(t, "canadian_regions", []SynonymRule{
		{SurfaceForms: []string{"nt"}, Expansions: [][]string{{"northwest", "territories"}}},
	})
	australian := mustTable(t, "australian_states", []SynonymRule{
		{SurfaceForms: []string{"nt"}, Expansions: [][]string{{"northern", "territory"}}},
	})

	caFirst := analyze(t, "nt", LowercaseFilter{},
		NewSynonymFilter(canadian), NewSynonymFilter(australian))
	if got, want := caFirst.Terms(), []string{"northwest", "territories"}; !reflect.DeepEqual(got, want) {
		t.Errorf("canadian-first chain: Terms() = %v, want %v", got, want)
	}

	auFirst := analyze(t, "nt", LowercaseFilter{},
		NewSynonymFilter(australian), NewSynonymFilter(canadian))
	if got, want := auFirst.Terms(), []string{"northern", "territory"}; !reflect.DeepEqual(got, want) {
		t.Errorf("australian-first chain: Terms() = %v, want %v", got, want)
	}
}

func TestFoldingFilterEmitsOriginalAndFolded(t *testing.T) {
	stream := analyze(t, "société", LowercaseFilter{}, FoldingFilter{})

	if len(stream) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(stream))
	}
	slot := stream[0]
	if len(slot.Alts) != 2 {
		t.Fatalf("expected original + folded alternatives, got %d", len(slot.Alts))
	}
	if slot.Alts[0][0].Text != "société" || slot.Alts[0][0].Kind != TokenWord {
		t.Errorf("original alternative = %+v", slot.Alts[0][0])
	}
	if slot.Alts[1][0].Text != "societe" || slot.Alts[1][0].Kind != TokenFolded {
		t.Errorf("folded alternative = %+v", slot.Alts[1][0])
	}
}

// Folding an already-folded stream yields the identical single-token slots.
func TestFoldingFilterIdempotence(t *testing.T) {
	once := analyze(t, "acme corporation", LowercaseFilter{}, FoldingFilter{})
	twice := FoldingFilter{}.Filter(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("folding not idempotent: %v != %v", once, twice)
	}
	for _, slot := range twice {
		if len(slot.Alts) != 1 {
			t.Errorf("spurious duplicate alternative in slot %+v", slot)
		}
	}
}

func TestSynonymFilterMatchesFoldedAlternative(t *testing.T) {
	table := mustTable(t, "company_suffixes", []SynonymRule{
		{SurfaceForms: []string{"societe"}, Expansions: [][]string{{"company"}}},
	})
	stream := analyze(t, "société", LowercaseFilter{}, FoldingFilter{}, NewSynonymFilter(table))

	if len(stream) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(stream))
	}
	if got := stream[0].Alts[0][0].Text; got != "company" {
		t.Errorf("expansion = %q, want %q (matched via the folded form)", got, "company")
	}
}

func TestNewSynonymTableRejectsDuplicateSurfaceForm(t *testing.T) {
	_, err := NewSynonymTable("company_suffixes", []SynonymRule{
		{SurfaceForms: []string{"sa"}, Expansions: [][]string{{"societe", "anonyme"}}},
		{SurfaceForms: []string{"sa"}, Expansions: [][]string{{"south", "australia"}}},
	})
	if !errors.Is(err, internalerrors.ErrConfig) {
		t.Errorf("expected a config error, got %v", err)
	}
}

func TestNewSynonymTableRejectsCyclicExpansion(t *testing.T) {
	_, err := NewSynonymTable("broken", []SynonymRule{
		{SurfaceForms: []string{"ca"}, Expansions: [][]string{{"ca"}}},
	})
	if !errors.Is(err, internalerrors.ErrConfig) {
		t.Errorf("expected a config error, got %v", err)
	}
}
