package search

import (
	"context"
	"testing"

	"github.com/corpindex/company-search/index"
	"github.com/corpindex/company-search/internal/analysis/rules"
	"github.com/corpindex/company-search/internal/indexing"
	"github.com/corpindex/company-search/internal/mapping"
	"github.com/corpindex/company-search/model"
	"github.com/corpindex/company-search/services"
	"github.com/corpindex/company-search/store"
)

func newTestService(t *testing.T, companies []model.Company) *Service {
	t.Helper()
	registry, err := rules.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	mapper, err := mapping.NewEngine(registry, mapping.DefaultFields())
	if err != nil {
		t.Fatalf("failed to build mapping engine: %v", err)
	}
	idx := index.NewInvertedIndex()
	cs := store.NewCompanyStore()

	indexer, err := indexing.NewService(idx, cs, mapper)
	if err != nil {
		t.Fatalf("failed to build indexer: %v", err)
	}
	if result := indexer.AddCompanies(companies); result.Failed() != 0 {
		t.Fatalf("failed to index fixture companies: %v", result.Errors)
	}

	svc, err := NewService(idx, cs, mapper, 0, 0)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func fixtureCompanies() []model.Company {
	return []model.Company{
		{ID: 1, Name: "Acme Corp.", Country: "United States", Locality: "CA", Industry: "Software", Domain: "acme.com"},
		{ID: 2, Name: "Acme Industries", Country: "United States", Locality: "NY", Industry: "Manufacturing"},
		{ID: 3, Name: "Globex SA", Country: "France", Locality: "Paris", Industry: "Energy"},
		{ID: 4, Name: "Initech Ltd", Country: "United Kingdom", Locality: "LDN", Industry: "Software"},
	}
}

func hitIDs(hits []services.HitResult) []int64 {
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.Company.ID)
	}
	return ids
}

func TestSearchAnalyzesQueryLikeDocuments(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	// "Corp" expands to "corporation" at index time; the query goes through
	// the same pipeline so the surface form still matches.
	result, err := svc.Search(services.SearchQuery{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	ids := hitIDs(result.Hits)
	if len(ids) != 2 || ids[0] != 1 {
		t.Fatalf("expected companies [1 2] with 1 first, got %v", ids)
	}

	top := result.Hits[0]
	if top.Info.NumberExactWords != 2 {
		t.Errorf("expected 2 exact query words for company 1, got %d", top.Info.NumberExactWords)
	}
	if got := top.FieldMatches[model.FieldName]; len(got) != 2 {
		t.Errorf("unexpected field matches: %v", got)
	}
	if result.QueryID == "" {
		t.Error("expected a query ID")
	}
}

func TestSearchTypoTolerance(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	// "glbex" is one deletion away from "globex".
	result, err := svc.Search(services.SearchQuery{Name: "glbex"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	ids := hitIDs(result.Hits)
	if len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("expected company 3 via typo match, got %v", ids)
	}
	hit := result.Hits[0]
	if hit.Info.NumTypos != 1 || hit.Info.NumberExactWords != 0 {
		t.Errorf("expected 1 typo and 0 exact words, got %+v", hit.Info)
	}
}

func TestConfiguredThresholdsDisableTypoMatching(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	// Thresholds above any realistic word length make matching exact-only.
	strict, err := NewService(svc.invertedIndex, svc.companyStore, svc.mapper, 99, 100)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	result, err := strict.Search(services.SearchQuery{Name: "glbex"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("expected no typo matches with raised thresholds, got %v", hitIDs(result.Hits))
	}

	// Exact terms still match.
	result, err = strict.Search(services.SearchQuery{Name: "Globex"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ids := hitIDs(result.Hits); len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("expected exact match on company 3, got %v", ids)
	}

	// A per-request override wins over the configured defaults.
	one, two := 4, 7
	result, err = strict.Search(services.SearchQuery{
		Name:                 "glbex",
		MinWordSizeFor1Typo:  &one,
		MinWordSizeFor2Typos: &two,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ids := hitIDs(result.Hits); len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("expected override to restore typo match, got %v", ids)
	}
}

func TestSearchShortTermsRequireExactMatch(t *testing.T) {
	svc := newTestService(t, []model.Company{
		{ID: 1, Name: "Abc"},
	})

	result, err := svc.Search(services.SearchQuery{Name: "abd"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result.Hits) != 0 {
		t.Errorf("terms under the single-typo length must match exactly, got %v", hitIDs(result.Hits))
	}
}

func TestSearchLocalityUsesSynonymTables(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	// Document locality "CA" indexes as "california"; the query expands the
	// same way.
	result, err := svc.Search(services.SearchQuery{Locality: "CA"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	ids := hitIDs(result.Hits)
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected company 1 for locality CA, got %v", ids)
	}

	// And a spelled-out query matches the abbreviated document.
	result, err = svc.Search(services.SearchQuery{Locality: "California"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ids := hitIDs(result.Hits); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected company 1 for locality California, got %v", ids)
	}
}

func TestSearchMustCombinesFields(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	result, err := svc.Search(services.SearchQuery{Name: "Acme", Locality: "NY"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	ids := hitIDs(result.Hits)
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected only company 2 to match both clauses, got %v", ids)
	}
}

func TestSearchKeywordFilters(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	result, err := svc.Search(services.SearchQuery{
		Name:    "Acme",
		Filters: map[string]string{model.FieldIndustry + ".keyword": "Software"},
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ids := hitIDs(result.Hits); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected company 1, got %v", ids)
	}

	// Filters-only query.
	result, err = svc.Search(services.SearchQuery{
		Filters: map[string]string{model.FieldDomain: "acme.com"},
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ids := hitIDs(result.Hits); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected company 1 via domain filter, got %v", ids)
	}

	// Keyword filters are exact and case-sensitive.
	result, _ = svc.Search(services.SearchQuery{
		Filters: map[string]string{model.FieldDomain: "ACME.COM"},
	})
	if len(result.Hits) != 0 {
		t.Errorf("keyword filter must be case-sensitive, got %v", hitIDs(result.Hits))
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	if _, err := svc.Search(services.SearchQuery{}); err == nil {
		t.Error("expected an error for an empty query")
	}
}

func TestSearchPagination(t *testing.T) {
	companies := make([]model.Company, 0, 7)
	for i := int64(1); i <= 7; i++ {
		companies = append(companies, model.Company{ID: i, Name: "Acme"})
	}
	svc := newTestService(t, companies)

	page1, err := svc.Search(services.SearchQuery{Name: "Acme", Page: 1, PageSize: 3})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	page3, err := svc.Search(services.SearchQuery{Name: "Acme", Page: 3, PageSize: 3})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if page1.Total != 7 || len(page1.Hits) != 3 {
		t.Errorf("page 1: total %d, hits %d", page1.Total, len(page1.Hits))
	}
	if len(page3.Hits) != 1 {
		t.Errorf("page 3: expected 1 hit, got %d", len(page3.Hits))
	}

	// Equal scores fall back to ID order, so pages never overlap.
	if got := hitIDs(page1.Hits); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("unexpected page 1 order: %v", got)
	}
}

func TestMultiSearch(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	result, err := svc.MultiSearch(context.Background(), services.MultiSearchQuery{
		Queries: []services.SearchQuery{
			{Name: "Acme"},
			{Name: "Globex"},
			{Name: "No Such Company"},
		},
		MaxResultsPerQuery: 2,
	})
	if err != nil {
		t.Fatalf("MultiSearch failed: %v", err)
	}

	if result.TotalQueries != 3 || len(result.Results) != 3 {
		t.Fatalf("expected 3 results, got %+v", result)
	}
	if len(result.Results[0].Hits) != 2 {
		t.Errorf("query 0: expected 2 hits, got %d", len(result.Results[0].Hits))
	}
	if ids := hitIDs(result.Results[1].Hits); len(ids) != 1 || ids[0] != 3 {
		t.Errorf("query 1: expected company 3, got %v", ids)
	}
	if len(result.Results[2].Hits) != 0 {
		t.Errorf("query 2: expected no hits, got %v", hitIDs(result.Results[2].Hits))
	}
}

func TestMultiSearchDefaultsAndBounds(t *testing.T) {
	svc := newTestService(t, fixtureCompanies())

	result, err := svc.MultiSearch(context.Background(), services.MultiSearchQuery{
		Queries: []services.SearchQuery{{Name: "Acme"}},
	})
	if err != nil {
		t.Fatalf("MultiSearch failed: %v", err)
	}
	if len(result.Results[0].Hits) != 1 {
		t.Errorf("default cap is 1 result per query, got %d hits", len(result.Results[0].Hits))
	}

	_, err = svc.MultiSearch(context.Background(), services.MultiSearchQuery{
		Queries:            []services.SearchQuery{{Name: "Acme"}},
		MaxResultsPerQuery: 6,
	})
	if err == nil {
		t.Error("expected an error for a cap above the maximum")
	}

	_, err = svc.MultiSearch(context.Background(), services.MultiSearchQuery{})
	if err == nil {
		t.Error("expected an error for an empty query list")
	}
}
