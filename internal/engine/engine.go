// Package engine wires the analysis rules, mapping, index, store, ID
// registry, and job manager into one running company search engine.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/corpindex/company-search/config"
	"github.com/corpindex/company-search/index"
	"github.com/corpindex/company-search/internal/analysis"
	"github.com/corpindex/company-search/internal/analysis/rules"
	"github.com/corpindex/company-search/internal/errors"
	"github.com/corpindex/company-search/internal/ids"
	"github.com/corpindex/company-search/internal/indexing"
	"github.com/corpindex/company-search/internal/jobs"
	"github.com/corpindex/company-search/internal/mapping"
	"github.com/corpindex/company-search/internal/search"
	"github.com/corpindex/company-search/model"
	"github.com/corpindex/company-search/services"
	"github.com/corpindex/company-search/store"
)

const dataDirPerm = 0755

// Engine owns every component of the search service.
// It implements the services.Engine interface.
type Engine struct {
	settings config.Settings

	registry *analysis.Registry
	mapper   *mapping.Engine

	invertedIndex *index.InvertedIndex
	companyStore  *store.CompanyStore

	idRegistry *ids.Registry

	indexer    *indexing.Service
	searcher   *search.Service
	jobManager *jobs.Manager
}

// New builds the engine. Rule tables load exactly once here; any rule or
// mapping problem aborts startup before a single document is processed.
func New(settings config.Settings) (*Engine, error) {
	if err := os.MkdirAll(settings.DataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", settings.DataDir, err)
	}

	var override *rules.FileConfig
	if settings.RulesFile != "" {
		loaded, err := rules.LoadFile(settings.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrConfig, err)
		}
		override = loaded
	}

	registry, err := rules.NewRegistry(override)
	if err != nil {
		return nil, err
	}

	mapper, err := mapping.NewEngine(registry, mapping.DefaultFields())
	if err != nil {
		return nil, err
	}

	invertedIndex, companyStore := loadIndexData(settings.DataDir)

	idRegistry, err := ids.Open(filepath.Join(settings.DataDir, idRegistryFile))
	if err != nil {
		return nil, err
	}

	indexer, err := indexing.NewService(invertedIndex, companyStore, mapper)
	if err != nil {
		return nil, err
	}
	indexer.AddObserver(&idRegistryObserver{registry: idRegistry})
	if settings.IDListPath != "" {
		indexer.AddObserver(indexing.NewIDListObserver(afero.NewOsFs(), settings.IDListPath))
	}

	searcher, err := search.NewService(invertedIndex, companyStore, mapper,
		settings.MinWordSizeFor1Typo, settings.MinWordSizeFor2Typos)
	if err != nil {
		return nil, err
	}

	jobManager := jobs.NewManager(settings.MaxJobWorkers)
	jobManager.Start()

	return &Engine{
		settings:      settings,
		registry:      registry,
		mapper:        mapper,
		invertedIndex: invertedIndex,
		companyStore:  companyStore,
		idRegistry:    idRegistry,
		indexer:       indexer,
		searcher:      searcher,
		jobManager:    jobManager,
	}, nil
}

// Close stops background work and releases the ID registry.
func (e *Engine) Close() error {
	e.jobManager.Stop()
	return e.idRegistry.Close()
}

// idRegistryObserver keeps the durable ID set in sync with the index.
type idRegistryObserver struct {
	registry *ids.Registry
}

func (o *idRegistryObserver) CompanyIndexed(company model.Company) error {
	return o.registry.Add(company.ID)
}

// AddIndexObserver registers an additional observer on the indexing pipeline.
func (e *Engine) AddIndexObserver(observer indexing.Observer) {
	e.indexer.AddObserver(observer)
}

// AddCompanies indexes a batch synchronously.
func (e *Engine) AddCompanies(companies []model.Company) *model.BulkResult {
	return e.indexer.AddCompanies(companies)
}

// UpdateCompanies applies partial updates synchronously.
func (e *Engine) UpdateCompanies(updates []model.CompanyUpdate) *model.BulkResult {
	return e.indexer.UpdateCompanies(updates)
}

// DeleteCompany removes one company and retires its ID.
func (e *Engine) DeleteCompany(companyID int64) error {
	if err := e.indexer.DeleteCompany(companyID); err != nil {
		return err
	}
	return e.idRegistry.Remove(companyID)
}

// DeleteCompanies removes a batch of companies.
func (e *Engine) DeleteCompanies(companyIDs []int64) *model.BulkResult {
	result := model.NewBulkResult()
	for _, id := range companyIDs {
		if err := e.DeleteCompany(id); err != nil {
			result.RecordError(id, err.Error())
			continue
		}
		result.Succeeded++
	}
	return result
}

// GetCompany returns a stored company by its user-facing ID.
func (e *Engine) GetCompany(companyID int64) (model.Company, error) {
	e.companyStore.Mu.RLock()
	defer e.companyStore.Mu.RUnlock()

	company, ok := e.companyStore.Get(companyID)
	if !ok {
		return model.Company{}, errors.NewCompanyNotFoundError(companyID)
	}
	return company, nil
}

// Count returns the number of indexed companies.
func (e *Engine) Count() int {
	e.companyStore.Mu.RLock()
	defer e.companyStore.Mu.RUnlock()
	return e.companyStore.Count()
}

// GenerateCompanyID issues a fresh never-used company ID.
func (e *Engine) GenerateCompanyID() (int64, error) {
	return e.idRegistry.Generate()
}

// Search runs one query against the index.
func (e *Engine) Search(query services.SearchQuery) (services.SearchResult, error) {
	return e.searcher.Search(query)
}

// MultiSearch runs several queries in parallel.
func (e *Engine) MultiSearch(ctx context.Context, query services.MultiSearchQuery) (*services.MultiSearchResult, error) {
	return e.searcher.MultiSearch(ctx, query)
}

// GetJob returns a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns background jobs, optionally filtered by status.
func (e *Engine) ListJobs(status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(status)
}
