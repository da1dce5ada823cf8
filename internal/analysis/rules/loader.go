package rules

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corpindex/company-search/internal/analysis"
)

// Analyzer names bound by the default registry.
const (
	AnalyzerName     = "name_analyzer"
	AnalyzerLocality = "locality_analyzer"
	AnalyzerStandard = "standard"
	AnalyzerKeyword  = "keyword"
)

// specialCharStripPattern removes the configured special characters from raw
// text before tokenization.
const specialCharStripPattern = `[./=()%&*!]`

// FileConfig is the YAML override format for rule tables and stopword lists.
// Only table names the default registry knows can be overridden; anything
// else is a configuration error.
type FileConfig struct {
	Stopwords     []analysis.StopwordList `yaml:"stopwords"`
	SynonymTables []TableConfig           `yaml:"synonym_tables"`
}

// TableConfig overrides one synonym table with declarative records.
type TableConfig struct {
	Name    string   `yaml:"name"`
	Records []string `yaml:"records"`
}

// LoadFile reads a YAML rule-table override file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's flags
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return &cfg, nil
}

// NewDefaultRegistry builds the analyzer registry from the built-in rule
// tables.
func NewDefaultRegistry() (*analysis.Registry, error) {
	return NewRegistry(nil)
}

// NewRegistry builds the analyzer registry, applying the optional override
// config on top of the built-in tables. Any table error is fatal: no
// documents may be processed against a partially loaded rule set.
func NewRegistry(override *FileConfig) (*analysis.Registry, error) {
	records := make(map[string][]string, len(defaultTableRecords))
	for name, recs := range defaultTableRecords {
		records[name] = recs
	}
	stopwords := []analysis.StopwordList{{Lang: "en", Words: englishStopwords}}

	if override != nil {
		for _, tc := range override.SynonymTables {
			if _, known := records[tc.Name]; !known {
				return nil, fmt.Errorf("rules file overrides unknown synonym table '%s'", tc.Name)
			}
			records[tc.Name] = tc.Records
		}
		if len(override.Stopwords) > 0 {
			stopwords = override.Stopwords
		}
	}

	tables := make(map[string]*analysis.SynonymTable, len(records))
	for name, recs := range records {
		table, err := NewTable(name, recs)
		if err != nil {
			return nil, err
		}
		tables[name] = table
	}

	// Locality chain order: US first, then the other locales. The order is
	// the precedence rule for surface forms defined in several tables.
	localityTables := []*analysis.SynonymTable{
		tables[TableUSStates],
		tables[TableCanadianRegions],
		tables[TableAustralianStates],
		tables[TableGermanRegions],
		tables[TableUKRegions],
	}
	logCollisions(append(localityTables, tables[TableCompanySuffixes]))

	stripChars, err := analysis.NewCharFilter(analysis.ReplaceRule{Pattern: specialCharStripPattern})
	if err != nil {
		return nil, err
	}
	charFilters := []*analysis.CharFilter{stripChars}

	stopEnglish := analysis.NewStopwordFilter("stop_en", stopwords...)

	nameAnalyzer := analysis.NewAnalyzer(AnalyzerName, charFilters,
		analysis.LowercaseFilter{},
		stopEnglish,
		analysis.FoldingFilter{},
		analysis.NewSynonymFilter(tables[TableCompanySuffixes]),
	)

	localityFilters := []analysis.TokenFilter{analysis.LowercaseFilter{}}
	for _, table := range localityTables {
		localityFilters = append(localityFilters, analysis.NewSynonymFilter(table))
	}
	localityAnalyzer := analysis.NewAnalyzer(AnalyzerLocality, charFilters, localityFilters...)

	standard := analysis.NewAnalyzer(AnalyzerStandard, nil, analysis.LowercaseFilter{})
	keyword := analysis.NewKeywordAnalyzer(AnalyzerKeyword)

	return analysis.NewRegistry(nameAnalyzer, localityAnalyzer, standard, keyword)
}

// Collisions returns every surface form defined by more than one of the
// given tables, mapped to the defining table names in argument order.
func Collisions(tables []*analysis.SynonymTable) map[string][]string {
	owners := make(map[string][]string)
	for _, table := range tables {
		for _, surface := range table.SurfaceForms() {
			owners[surface] = append(owners[surface], table.Name())
		}
	}
	collisions := make(map[string][]string)
	for surface, names := range owners {
		if len(names) > 1 {
			collisions[surface] = names
		}
	}
	return collisions
}

// logCollisions warns about surface forms defined in more than one table.
// Declared filter order still decides the winner; the warning exists so the
// overlap does not fail silently in production matching.
func logCollisions(tables []*analysis.SynonymTable) {
	collisions := Collisions(tables)
	if len(collisions) == 0 {
		return
	}
	surfaces := make([]string, 0, len(collisions))
	for surface := range collisions {
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)
	for _, surface := range surfaces {
		log.Printf("Warning: surface form '%s' is defined in several synonym tables (%s); the earliest filter in the chain wins",
			surface, strings.Join(collisions[surface], ", "))
	}
}
