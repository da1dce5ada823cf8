package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/afero"

	"github.com/corpindex/company-search/internal/indexing"
	"github.com/corpindex/company-search/model"
)

// AddCompaniesAsync runs a bulk add as a tracked job and returns the job ID.
func (e *Engine) AddCompaniesAsync(companies []model.Company) (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeBulkAdd, map[string]string{
		"count": strconv.Itoa(len(companies)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		result := e.indexer.AddCompanies(companies)
		e.recordBulkOutcome(job.ID, len(companies), result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start bulk add job: %w", err)
	}
	return jobID, nil
}

// UpdateCompaniesAsync runs a bulk update as a tracked job.
func (e *Engine) UpdateCompaniesAsync(updates []model.CompanyUpdate) (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeBulkUpdate, map[string]string{
		"count": strconv.Itoa(len(updates)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		result := e.indexer.UpdateCompanies(updates)
		e.recordBulkOutcome(job.ID, len(updates), result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start bulk update job: %w", err)
	}
	return jobID, nil
}

// DeleteCompaniesAsync runs a bulk delete as a tracked job.
func (e *Engine) DeleteCompaniesAsync(companyIDs []int64) (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeBulkDelete, map[string]string{
		"count": strconv.Itoa(len(companyIDs)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		result := e.DeleteCompanies(companyIDs)
		e.recordBulkOutcome(job.ID, len(companyIDs), result)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start bulk delete job: %w", err)
	}
	return jobID, nil
}

// IngestFileAsync loads a company CSV into the index as a tracked job. Row
// errors skip their row and are logged; the job only fails when the file
// itself cannot be read.
func (e *Engine) IngestFileAsync(fs afero.Fs, path string) (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeIngestFile, map[string]string{"path": path})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		companies, rowErrors, err := indexing.ReadCompaniesCSV(fs, path)
		if err != nil {
			return err
		}
		for _, rowErr := range rowErrors {
			log.Printf("Skipped row in %s: %v", path, rowErr)
		}
		result := e.indexer.AddCompanies(companies)
		message := fmt.Sprintf("%d indexed, %d rows skipped, %d rejected",
			result.Succeeded, len(rowErrors), result.Failed())
		e.jobManager.UpdateJobProgress(job.ID, result.Succeeded, len(companies)+len(rowErrors), message)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start ingest job: %w", err)
	}
	return jobID, nil
}

// PersistAsync snapshots the index to disk as a tracked job.
func (e *Engine) PersistAsync() (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypePersist, nil)

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.Persist()
	})
	if err != nil {
		return "", fmt.Errorf("failed to start persist job: %w", err)
	}
	return jobID, nil
}

func (e *Engine) recordBulkOutcome(jobID string, total int, result *model.BulkResult) {
	message := fmt.Sprintf("%d succeeded, %d failed", result.Succeeded, result.Failed())
	e.jobManager.UpdateJobProgress(jobID, result.Succeeded+result.Failed(), total, message)
}
