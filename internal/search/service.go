// Package search answers company queries against the inverted index. Fuzzy
// fields run through the same analyzers used at index time, so a query for
// "Acme Corp" matches documents indexed as "acme corporation".
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/google/uuid"

	"github.com/corpindex/company-search/index"
	"github.com/corpindex/company-search/internal/errors"
	"github.com/corpindex/company-search/internal/mapping"
	"github.com/corpindex/company-search/internal/typoutil"
	"github.com/corpindex/company-search/model"
	"github.com/corpindex/company-search/services"
	"github.com/corpindex/company-search/store"
)

const (
	defaultPageSize = 10

	defaultMinWordSizeFor1Typo  = 4
	defaultMinWordSizeFor2Typos = 7

	exactMatchWeight = 2.0
	typoMatchWeight  = 1.0
)

// Service implements the search logic for the company index.
// It fulfills the services.Searcher interface.
type Service struct {
	invertedIndex *index.InvertedIndex
	companyStore  *store.CompanyStore
	mapper        *mapping.Engine

	minWordSizeFor1Typo  int
	minWordSizeFor2Typos int
}

// NewService creates a new search Service. The typo thresholds become the
// per-query defaults; non-positive values fall back to the built-in ones.
func NewService(invertedIndex *index.InvertedIndex, companyStore *store.CompanyStore, mapper *mapping.Engine, minWordSizeFor1Typo, minWordSizeFor2Typos int) (*Service, error) {
	if invertedIndex == nil {
		return nil, errors.NewValidationError("", "inverted index cannot be nil")
	}
	if companyStore == nil {
		return nil, errors.NewValidationError("", "company store cannot be nil")
	}
	if mapper == nil {
		return nil, errors.NewValidationError("", "mapping engine cannot be nil")
	}
	if minWordSizeFor1Typo <= 0 {
		minWordSizeFor1Typo = defaultMinWordSizeFor1Typo
	}
	if minWordSizeFor2Typos <= 0 {
		minWordSizeFor2Typos = defaultMinWordSizeFor2Typos
	}
	return &Service{
		invertedIndex:        invertedIndex,
		companyStore:         companyStore,
		mapper:               mapper,
		minWordSizeFor1Typo:  minWordSizeFor1Typo,
		minWordSizeFor2Typos: minWordSizeFor2Typos,
	}, nil
}

// candidateHit accumulates per-document match state while posting sets are
// being scanned.
type candidateHit struct {
	score               float64
	matchedTermsByField map[string]map[string]struct{}
	exactQueryTerms     map[string]struct{}
	typoQueryTerms      map[string]struct{}
}

// Search runs one query. Fuzzy fields (name, locality) are must clauses:
// a hit matches at least one analyzed query term of every provided fuzzy
// field. Filters are exact keyword matches intersected on top.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	min1 := s.minWordSizeFor1Typo
	if query.MinWordSizeFor1Typo != nil {
		min1 = *query.MinWordSizeFor1Typo
	}
	min2 := s.minWordSizeFor2Typos
	if query.MinWordSizeFor2Typos != nil {
		min2 = *query.MinWordSizeFor2Typos
	}

	type fieldQuery struct {
		field string
		text  string
	}
	var fieldQueries []fieldQuery
	if strings.TrimSpace(query.Name) != "" {
		fieldQueries = append(fieldQueries, fieldQuery{model.FieldName, query.Name})
	}
	if strings.TrimSpace(query.Locality) != "" {
		fieldQueries = append(fieldQueries, fieldQuery{model.FieldLocality, query.Locality})
	}
	if len(fieldQueries) == 0 && len(query.Filters) == 0 {
		return services.SearchResult{}, errors.NewValidationError("query",
			"must provide a name, a locality, or at least one filter")
	}

	candidates := make(map[uint32]*candidateHit)

	s.invertedIndex.Mu.RLock()
	var matched *roaring.Bitmap
	for _, fq := range fieldQueries {
		analyzer, ok := s.mapper.AnalyzerFor(fq.field)
		if !ok {
			s.invertedIndex.Mu.RUnlock()
			return services.SearchResult{}, errors.NewValidationError(fq.field, "field is not searchable")
		}
		terms := analyzer.Analyze(fq.text).Terms()
		fieldBM := s.matchFieldTerms(fq.field, terms, min1, min2, candidates)
		matched = intersect(matched, fieldBM)
	}
	for path, value := range query.Filters {
		bm := s.invertedIndex.KeywordPostings(path, value)
		if bm == nil {
			bm = roaring.New()
		}
		matched = intersect(matched, bm)
	}
	s.invertedIndex.Mu.RUnlock()

	hits := s.buildHits(matched, candidates)

	total := len(hits)
	startIdx := (page - 1) * pageSize
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + pageSize
	if endIdx > total {
		endIdx = total
	}

	return services.SearchResult{
		Hits:     hits[startIdx:endIdx],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Took:     time.Since(startTime).Milliseconds(),
		QueryID:  uuid.NewString(),
	}, nil
}

// matchFieldTerms collects the documents matching any query term of one
// field, exactly or within typo distance, and records per-document match
// state. Caller must hold the index lock for reading.
func (s *Service) matchFieldTerms(field string, queryTerms []string, min1, min2 int, candidates map[uint32]*candidateHit) *roaring.Bitmap {
	fieldBM := roaring.New()
	indexedTerms := s.invertedIndex.Terms(field)

	for _, queryTerm := range queryTerms {
		if bm := s.invertedIndex.Postings(field, queryTerm); bm != nil {
			fieldBM.Or(bm)
			recordMatches(candidates, bm, field, queryTerm, queryTerm, exactMatchWeight)
		}

		maxDistance := typoutil.MaxDistanceForTerm(queryTerm, min1, min2)
		for _, indexed := range typoutil.FindWithinDistance(queryTerm, indexedTerms, maxDistance) {
			bm := s.invertedIndex.Postings(field, indexed)
			if bm == nil {
				continue
			}
			fieldBM.Or(bm)
			recordMatches(candidates, bm, field, indexed, queryTerm, typoMatchWeight)
		}
	}
	return fieldBM
}

func recordMatches(candidates map[uint32]*candidateHit, bm *roaring.Bitmap, field, matchedTerm, queryTerm string, weight float64) {
	exact := matchedTerm == queryTerm
	it := bm.Iterator()
	for it.HasNext() {
		docID := it.Next()
		cand, ok := candidates[docID]
		if !ok {
			cand = &candidateHit{
				matchedTermsByField: make(map[string]map[string]struct{}),
				exactQueryTerms:     make(map[string]struct{}),
				typoQueryTerms:      make(map[string]struct{}),
			}
			candidates[docID] = cand
		}
		cand.score += weight
		terms, ok := cand.matchedTermsByField[field]
		if !ok {
			terms = make(map[string]struct{})
			cand.matchedTermsByField[field] = terms
		}
		terms[matchedTerm] = struct{}{}
		if exact {
			cand.exactQueryTerms[queryTerm] = struct{}{}
		} else {
			cand.typoQueryTerms[queryTerm] = struct{}{}
		}
	}
}

// buildHits turns the matched doc set into scored results, best first.
// Ties break on company ID so pagination is stable.
func (s *Service) buildHits(matched *roaring.Bitmap, candidates map[uint32]*candidateHit) []services.HitResult {
	if matched == nil || matched.IsEmpty() {
		return []services.HitResult{}
	}

	s.companyStore.Mu.RLock()
	defer s.companyStore.Mu.RUnlock()

	hits := make([]services.HitResult, 0, matched.GetCardinality())
	it := matched.Iterator()
	for it.HasNext() {
		docID := it.Next()
		company, ok := s.companyStore.GetByDocID(docID)
		if !ok {
			continue
		}

		hit := services.HitResult{
			Company:      company,
			FieldMatches: map[string][]string{},
		}
		if cand, ok := candidates[docID]; ok {
			hit.Score = cand.score
			for field, terms := range cand.matchedTermsByField {
				sorted := make([]string, 0, len(terms))
				for term := range terms {
					sorted = append(sorted, term)
				}
				sort.Strings(sorted)
				hit.FieldMatches[field] = sorted
			}
			hit.Info.NumberExactWords = len(cand.exactQueryTerms)
			for queryTerm := range cand.typoQueryTerms {
				if _, alsoExact := cand.exactQueryTerms[queryTerm]; !alsoExact {
					hit.Info.NumTypos++
				}
			}
		}
		hits = append(hits, hit)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Company.ID < hits[j].Company.ID
	})
	return hits
}

func intersect(acc, bm *roaring.Bitmap) *roaring.Bitmap {
	if acc == nil {
		return bm.Clone()
	}
	acc.And(bm)
	return acc
}
