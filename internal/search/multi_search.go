package search

import (
	"context"
	"fmt"
	"time"

	"github.com/corpindex/company-search/internal/errors"
	"github.com/corpindex/company-search/services"
)

const (
	// Bounds for the per-query result cap. Requests outside the range are
	// rejected at the API layer; the default applies when the header is
	// absent.
	MinResultsPerQuery     = 1
	MaxResultsPerQuery     = 5
	DefaultResultsPerQuery = 1
)

// MultiSearch executes several queries in parallel and returns one result
// per query, in request order. Each query returns at most
// MaxResultsPerQuery hits.
func (s *Service) MultiSearch(ctx context.Context, multiQuery services.MultiSearchQuery) (*services.MultiSearchResult, error) {
	startTime := time.Now()

	if len(multiQuery.Queries) == 0 {
		return nil, errors.NewValidationError("queries", "at least one query is required")
	}

	perQuery := multiQuery.MaxResultsPerQuery
	if perQuery == 0 {
		perQuery = DefaultResultsPerQuery
	}
	if perQuery < MinResultsPerQuery || perQuery > MaxResultsPerQuery {
		return nil, errors.NewValidationError("max_results_per_query",
			fmt.Sprintf("must be between %d and %d", MinResultsPerQuery, MaxResultsPerQuery))
	}

	type queryResult struct {
		pos    int
		result services.SearchResult
		err    error
	}
	resultChan := make(chan queryResult, len(multiQuery.Queries))

	for pos, query := range multiQuery.Queries {
		query.Page = 1
		query.PageSize = perQuery

		go func(pos int, query services.SearchQuery) {
			result, err := s.Search(query)
			resultChan <- queryResult{pos: pos, result: result, err: err}
		}(pos, query)
	}

	results := make([]services.SearchResult, len(multiQuery.Queries))
	for i := 0; i < len(multiQuery.Queries); i++ {
		select {
		case qr := <-resultChan:
			if qr.err != nil {
				return nil, fmt.Errorf("query %d failed: %w", qr.pos, qr.err)
			}
			results[qr.pos] = qr.result
		case <-ctx.Done():
			return nil, fmt.Errorf("multi-search cancelled: %w", ctx.Err())
		}
	}

	return &services.MultiSearchResult{
		Results:          results,
		TotalQueries:     len(multiQuery.Queries),
		ProcessingTimeMs: float64(time.Since(startTime).Nanoseconds()) / 1e6,
	}, nil
}
