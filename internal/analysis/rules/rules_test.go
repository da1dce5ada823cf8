package rules

import (
	"reflect"
	"testing"

	"github.com/corpindex/company-search/internal/analysis"
)

func defaultRegistry(t *testing.T) *analysis.Registry {
	t.Helper()
	registry, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("NewDefaultRegistry returned error: %v", err)
	}
	return registry
}

func analyzerNamed(t *testing.T, registry *analysis.Registry, name string) *analysis.Analyzer {
	t.Helper()
	a, ok := registry.Get(name)
	if !ok {
		t.Fatalf("analyzer '%s' not registered", name)
	}
	return a
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   analysis.SynonymRule
	}{
		{
			"single expansion",
			"corp => corporation",
			analysis.SynonymRule{SurfaceForms: []string{"corp"}, Expansions: [][]string{{"corporation"}}},
		},
		{
			"multiple expansions",
			"sa => societe anonyme, sociedade anonima, spolka akcyjna",
			analysis.SynonymRule{SurfaceForms: []string{"sa"}, Expansions: [][]string{
				{"societe", "anonyme"}, {"sociedade", "anonima"}, {"spolka", "akcyjna"},
			}},
		},
		{
			"multiple surface forms",
			"uk, gb => united kingdom",
			analysis.SynonymRule{SurfaceForms: []string{"uk", "gb"}, Expansions: [][]string{{"united", "kingdom"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.record)
			if err != nil {
				t.Fatalf("ParseRecord(%q) returned error: %v", tt.record, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRecord(%q) = %+v, want %+v", tt.record, got, tt.want)
			}
		})
	}
}

func TestParseRecordMalformed(t *testing.T) {
	for _, record := range []string{"corp corporation", "=> corporation", "corp =>"} {
		if _, err := ParseRecord(record); err == nil {
			t.Errorf("ParseRecord(%q) should fail", record)
		}
	}
}

func TestParseRecordsSkipsCommentsAndBlanks(t *testing.T) {
	rules, err := ParseRecords([]string{"", "# legal forms", "corp => corporation"})
	if err != nil {
		t.Fatalf("ParseRecords returned error: %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("expected 1 rule, got %d", len(rules))
	}
}

// The end-to-end scenario for the name chain: special chars stripped,
// stopwords dropped, suffix expanded.
func TestNameAnalyzerEndToEnd(t *testing.T) {
	name := analyzerNamed(t, defaultRegistry(t), AnalyzerName)

	stream := name.Analyze("Acme Corp.")
	want := []string{"acme", "corporation"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestNameAnalyzerDropsStopwords(t *testing.T) {
	name := analyzerNamed(t, defaultRegistry(t), AnalyzerName)

	stream := name.Analyze("The Acme Corp")
	want := []string{"acme", "corporation"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestNameAnalyzerMultiExpansionSuffix(t *testing.T) {
	name := analyzerNamed(t, defaultRegistry(t), AnalyzerName)

	stream := name.Analyze("Globex SA")
	if len(stream) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(stream))
	}
	if got := len(stream[1].Alts); got != 3 {
		t.Errorf("'sa' should expand to 3 sibling alternatives, got %d", got)
	}
}

func TestNameAnalyzerPreservesAccentedOriginal(t *testing.T) {
	name := analyzerNamed(t, defaultRegistry(t), AnalyzerName)

	stream := name.Analyze("Télécom")
	if len(stream) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(stream))
	}
	want := []string{"télécom", "telecom"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

// "ca" is defined by both the US and the Canadian tables; the US filter
// comes first in the locality chain, so "california" wins and the Canadian
// filter never sees the abbreviation.
func TestLocalityAnalyzerUSTableWinsForCA(t *testing.T) {
	locality := analyzerNamed(t, defaultRegistry(t), AnalyzerLocality)

	stream := locality.Analyze("CA")
	want := []string{"california"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

// "nt" is absent from the US table, defined by the Canadian and Australian
// ones; the Canadian filter precedes the Australian in the chain.
func TestLocalityAnalyzerCanadianTableWinsForNT(t *testing.T) {
	locality := analyzerNamed(t, defaultRegistry(t), AnalyzerLocality)

	stream := locality.Analyze("NT")
	want := []string{"northwest", "territories"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestLocalityAnalyzerAustralianNSW(t *testing.T) {
	locality := analyzerNamed(t, defaultRegistry(t), AnalyzerLocality)

	stream := locality.Analyze("NSW")
	want := []string{"new", "south", "wales"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestLocalityAnalyzerPassThrough(t *testing.T) {
	locality := analyzerNamed(t, defaultRegistry(t), AnalyzerLocality)

	stream := locality.Analyze("Lisbon")
	want := []string{"lisbon"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestStandardAnalyzer(t *testing.T) {
	standard := analyzerNamed(t, defaultRegistry(t), AnalyzerStandard)

	stream := standard.Analyze("United States")
	want := []string{"united", "states"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestCollisionsAcrossLocaleTables(t *testing.T) {
	us, err := NewTable(TableUSStates, usStateRecords)
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	canadian, err := NewTable(TableCanadianRegions, canadianRegionRecords)
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	australian, err := NewTable(TableAustralianStates, australianStateRecords)
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}

	collisions := Collisions([]*analysis.SynonymTable{us, canadian, australian})

	if owners := collisions["ca"]; !reflect.DeepEqual(owners, []string{TableUSStates, TableCanadianRegions}) {
		t.Errorf("collisions[ca] = %v", owners)
	}
	if owners := collisions["nt"]; !reflect.DeepEqual(owners, []string{TableCanadianRegions, TableAustralianStates}) {
		t.Errorf("collisions[nt] = %v", owners)
	}
	if _, ok := collisions["ny"]; ok {
		t.Error("'ny' is defined once and must not be reported")
	}
}

func TestNewRegistryRejectsUnknownOverrideTable(t *testing.T) {
	override := &FileConfig{SynonymTables: []TableConfig{{Name: "martian_regions", Records: []string{"ol => olympus mons"}}}}
	if _, err := NewRegistry(override); err == nil {
		t.Error("expected error for unknown table override")
	}
}

func TestNewRegistryAppliesOverrides(t *testing.T) {
	override := &FileConfig{SynonymTables: []TableConfig{
		{Name: TableUKRegions, Records: []string{"ldn => greater london"}},
	}}
	registry, err := NewRegistry(override)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	locality := analyzerNamed(t, registry, AnalyzerLocality)
	stream := locality.Analyze("LDN")
	want := []string{"greater", "london"}
	if got := stream.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestNewRegistryRejectsDuplicateSurfaceFormInOverride(t *testing.T) {
	override := &FileConfig{SynonymTables: []TableConfig{
		{Name: TableUKRegions, Records: []string{"ldn => london", "ldn => greater london"}},
	}}
	if _, err := NewRegistry(override); err == nil {
		t.Error("expected duplicate surface form to fail registry construction")
	}
}
