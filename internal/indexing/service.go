// Package indexing turns companies into index postings. Analysis is pure and
// runs in parallel across documents; index writes happen in micro-batches
// under the index lock so searches interleave with large ingestions.
package indexing

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring"

	"github.com/corpindex/company-search/index"
	"github.com/corpindex/company-search/internal/errors"
	"github.com/corpindex/company-search/internal/mapping"
	"github.com/corpindex/company-search/model"
	"github.com/corpindex/company-search/store"
)

// Observer is notified after a company has been written to the index.
// Observer failures are logged and never roll back the write.
type Observer interface {
	CompanyIndexed(company model.Company) error
}

// Service implements the indexing logic for the company index.
// It fulfills the services.Indexer interface.
type Service struct {
	invertedIndex *index.InvertedIndex
	companyStore  *store.CompanyStore
	mapper        *mapping.Engine
	observers     []Observer
}

// NewService creates a new indexing Service.
func NewService(invertedIndex *index.InvertedIndex, companyStore *store.CompanyStore, mapper *mapping.Engine) (*Service, error) {
	if invertedIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if companyStore == nil {
		return nil, fmt.Errorf("company store cannot be nil")
	}
	if mapper == nil {
		return nil, fmt.Errorf("mapping engine cannot be nil")
	}
	if invertedIndex.Fields == nil {
		invertedIndex.Fields = make(map[string]map[string]*roaring.Bitmap)
	}
	if invertedIndex.Keywords == nil {
		invertedIndex.Keywords = make(map[string]map[string]*roaring.Bitmap)
	}
	return &Service{
		invertedIndex: invertedIndex,
		companyStore:  companyStore,
		mapper:        mapper,
	}, nil
}

// AddObserver registers an observer for successful writes.
func (s *Service) AddObserver(obs Observer) {
	s.observers = append(s.observers, obs)
}

// analyzedCompany pairs a company with its analyzed fields, ready to be
// written under the lock.
type analyzedCompany struct {
	company model.Company
	fields  []mapping.AnalyzedField
}

// AddCompanies analyzes and indexes a batch of companies. A malformed
// company is recorded in the result and skipped; the rest of the batch
// proceeds. This satisfies the services.Indexer interface.
func (s *Service) AddCompanies(companies []model.Company) *model.BulkResult {
	result := model.NewBulkResult()
	if len(companies) == 0 {
		return result
	}

	analyzed := s.analyzeAll(companies, result)

	// Write in micro-batches to minimize lock hold time and let searches
	// interleave during large ingestions.
	const microBatchSize = 10

	for i := 0; i < len(analyzed); i += microBatchSize {
		end := i + microBatchSize
		if end > len(analyzed) {
			end = len(analyzed)
		}

		s.writeMicroBatch(analyzed[i:end])

		if end < len(analyzed) {
			// Yield so pending read operations can acquire the lock.
			time.Sleep(1 * time.Millisecond)
		}
	}

	for _, ac := range analyzed {
		s.notifyObservers(ac.company)
	}

	result.Succeeded = len(analyzed)
	return result
}

// analyzeAll runs the analysis pipeline across the batch with a worker pool.
// Analysis holds no shared state, so documents analyze independently.
func (s *Service) analyzeAll(companies []model.Company, result *model.BulkResult) []analyzedCompany {
	workerCount := runtime.NumCPU()
	if workerCount > len(companies) {
		workerCount = len(companies)
	}

	type analyzeOutcome struct {
		pos int
		ac  analyzedCompany
		err error
	}

	jobs := make(chan int)
	outcomes := make(chan analyzeOutcome, len(companies))

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range jobs {
				company := companies[pos]
				fields, err := s.mapper.AnalyzeDocument(&company)
				outcomes <- analyzeOutcome{
					pos: pos,
					ac:  analyzedCompany{company: company, fields: fields},
					err: err,
				}
			}
		}()
	}

	for pos := range companies {
		jobs <- pos
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	byPos := make(map[int]analyzedCompany, len(companies))
	for outcome := range outcomes {
		if outcome.err != nil {
			result.RecordError(outcome.ac.company.ID, outcome.err.Error())
			continue
		}
		byPos[outcome.pos] = outcome.ac
	}

	// Preserve batch order for deterministic doc ID assignment.
	analyzed := make([]analyzedCompany, 0, len(byPos))
	for pos := range companies {
		if ac, ok := byPos[pos]; ok {
			analyzed = append(analyzed, ac)
		}
	}
	return analyzed
}

// writeMicroBatch writes a small batch of analyzed companies under the locks.
func (s *Service) writeMicroBatch(batch []analyzedCompany) {
	s.companyStore.Mu.Lock()
	s.invertedIndex.Mu.Lock()
	defer s.companyStore.Mu.Unlock()
	defer s.invertedIndex.Mu.Unlock()

	for _, ac := range batch {
		s.writeCompanyUnsafe(ac)
	}
}

// writeCompanyUnsafe indexes one analyzed company. On re-add the previous
// postings are removed first so stale terms never linger. Caller must hold
// both locks.
func (s *Service) writeCompanyUnsafe(ac analyzedCompany) {
	if docID, exists := s.companyStore.CompanyToDoc[ac.company.ID]; exists {
		s.invertedIndex.RemoveDocument(docID)
	}

	docID := s.companyStore.Put(ac.company)

	for _, af := range ac.fields {
		if af.Exact != "" {
			s.invertedIndex.AddKeyword(af.Field, af.Exact, docID)
		}
		for _, term := range af.Stream.Terms() {
			s.invertedIndex.AddTerm(af.Field, term, docID)
		}
		for sub, value := range af.SubFields {
			s.invertedIndex.AddKeyword(af.Field+"."+sub, value, docID)
		}
	}
}

// UpdateCompanies applies partial updates. A missing company or a patch that
// produces a malformed document is recorded in the result; the rest of the
// batch proceeds. This satisfies the services.Indexer interface.
func (s *Service) UpdateCompanies(updates []model.CompanyUpdate) *model.BulkResult {
	result := model.NewBulkResult()

	merged := make([]model.Company, 0, len(updates))
	for _, u := range updates {
		s.companyStore.Mu.RLock()
		existing, ok := s.companyStore.Get(u.ID)
		s.companyStore.Mu.RUnlock()
		if !ok {
			result.RecordError(u.ID, errors.NewCompanyNotFoundError(u.ID).Error())
			continue
		}
		merged = append(merged, u.Apply(existing))
	}

	addResult := s.AddCompanies(merged)
	result.Succeeded = addResult.Succeeded
	for id, msg := range addResult.Errors {
		result.RecordError(id, msg)
	}
	return result
}

// DeleteCompany removes a company and all its postings.
// This satisfies the services.Indexer interface.
func (s *Service) DeleteCompany(companyID int64) error {
	s.companyStore.Mu.Lock()
	s.invertedIndex.Mu.Lock()
	defer s.companyStore.Mu.Unlock()
	defer s.invertedIndex.Mu.Unlock()

	docID, ok := s.companyStore.Delete(companyID)
	if !ok {
		return errors.NewCompanyNotFoundError(companyID)
	}
	s.invertedIndex.RemoveDocument(docID)
	return nil
}

// DeleteCompanies removes a batch of companies. Missing companies are
// recorded in the result; the rest of the batch proceeds.
func (s *Service) DeleteCompanies(companyIDs []int64) *model.BulkResult {
	result := model.NewBulkResult()
	for _, id := range companyIDs {
		if err := s.DeleteCompany(id); err != nil {
			result.RecordError(id, err.Error())
			continue
		}
		result.Succeeded++
	}
	return result
}

func (s *Service) notifyObservers(company model.Company) {
	for _, obs := range s.observers {
		if err := obs.CompanyIndexed(company); err != nil {
			log.Printf("Warning: indexing observer failed for company %d: %v", company.ID, err)
		}
	}
}
