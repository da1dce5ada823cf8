// Package services defines the query/result types and the interfaces the API
// layer depends on.
package services

import (
	"context"

	"github.com/corpindex/company-search/model"
)

// HitInfo contains metadata about a search hit, like typo counts and exact matches.
type HitInfo struct {
	NumTypos         int `json:"num_typos"`          // query terms that matched via typo correction
	NumberExactWords int `json:"number_exact_words"` // query terms that matched exactly
}

// HitResult represents a single company in the search results, including
// details about which query terms matched in which fields.
type HitResult struct {
	Company      model.Company       `json:"company"`
	FieldMatches map[string][]string `json:"field_matches"` // e.g. {"name": ["acme"], "locality": ["california"]}
	Score        float64             `json:"score"`
	Info         HitInfo             `json:"hit_info"`
}

// SearchResult is the response of a single query.
type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Took     int64       `json:"took"` // milliseconds
	QueryID  string      `json:"query_id"`
}

// SearchQuery is one company lookup. Name and Locality are analyzed with
// their field's pipeline and matched with typo tolerance; Filters are exact
// matches against keyword paths (e.g. "country.keyword", "domain").
type SearchQuery struct {
	Name                 string            `json:"name,omitempty"`
	Locality             string            `json:"locality,omitempty"`
	Filters              map[string]string `json:"filters,omitempty"`
	Page                 int               `json:"page,omitempty"`
	PageSize             int               `json:"page_size,omitempty"`
	MinWordSizeFor1Typo  *int              `json:"min_word_size_for_1_typo,omitempty"`
	MinWordSizeFor2Typos *int              `json:"min_word_size_for_2_typos,omitempty"`
}

// MultiSearchQuery executes several queries in one request.
// MaxResultsPerQuery comes from the X-Max-Results-Per-Query header and is
// validated to 1..5 before it reaches the search layer.
type MultiSearchQuery struct {
	Queries            []SearchQuery `json:"queries"`
	MaxResultsPerQuery int           `json:"-"`
}

// MultiSearchResult holds one result per query, in request order.
type MultiSearchResult struct {
	Results          []SearchResult `json:"results"`
	TotalQueries     int            `json:"total_queries"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
}

// Indexer defines operations for writing companies to the index.
type Indexer interface {
	AddCompanies(companies []model.Company) *model.BulkResult
	UpdateCompanies(updates []model.CompanyUpdate) *model.BulkResult
	DeleteCompany(companyID int64) error
	DeleteCompanies(companyIDs []int64) *model.BulkResult
}

// Searcher defines operations for querying the index.
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
	MultiSearch(ctx context.Context, query MultiSearchQuery) (*MultiSearchResult, error)
}

// JobManager defines operations for inspecting background jobs.
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// Engine is the full surface the API layer is wired against.
type Engine interface {
	Indexer
	Searcher
	JobManager

	GetCompany(companyID int64) (model.Company, error)
	Count() int
	GenerateCompanyID() (int64, error)

	// Async variants run as tracked jobs and return the job ID.
	AddCompaniesAsync(companies []model.Company) (string, error)
	UpdateCompaniesAsync(updates []model.CompanyUpdate) (string, error)
	DeleteCompaniesAsync(companyIDs []int64) (string, error)
	PersistAsync() (string, error)
}
