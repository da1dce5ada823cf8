package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/corpindex/company-search/config"
	"github.com/corpindex/company-search/internal/engine"
	"github.com/corpindex/company-search/internal/indexing"
	"github.com/corpindex/company-search/model"
)

const jobPollInterval = 100 * time.Millisecond

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		csvPath    = flag.String("csv", "", "Path to the source CSV file (required)")
		dataDir    = flag.String("data-dir", "./data", "Directory for persisted index data")
		rulesFile  = flag.String("rules-file", "", "YAML file overriding the built-in synonym tables")
		idListPath = flag.String("id-list", "", "File receiving one company ID per indexed document")
		verbose    = flag.Bool("verbose", false, "Print a diagnostic line per indexed company")
	)
	flag.Parse()

	if *help || *csvPath == "" {
		fmt.Printf("Company Ingest - load a company CSV into the search index\n\n")
		fmt.Printf("Usage: %s --csv companies.csv [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		if *help {
			return
		}
		os.Exit(2)
	}

	settings := config.DefaultSettings()
	settings.DataDir = *dataDir
	settings.RulesFile = *rulesFile
	settings.IDListPath = *idListPath

	eng, err := engine.New(settings)
	if err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer eng.Close()

	if *verbose {
		eng.AddIndexObserver(indexing.NewDiagnosticObserver(os.Stderr))
	}

	start := time.Now()
	jobID, err := eng.IngestFileAsync(afero.NewOsFs(), *csvPath)
	if err != nil {
		log.Fatalf("Failed to start ingestion: %v", err)
	}

	job := waitForJob(eng, jobID)
	if job.Status == model.JobStatusFailed {
		log.Fatalf("Ingestion failed: %s", job.Error)
	}

	if err := eng.Persist(); err != nil {
		log.Fatalf("Failed to persist index: %v", err)
	}

	summary := "no companies indexed"
	if job.Progress != nil && job.Progress.Message != "" {
		summary = job.Progress.Message
	}
	fmt.Printf("Ingested %s in %v\n", summary, time.Since(start).Round(time.Millisecond))
}

func waitForJob(eng *engine.Engine, jobID string) *model.Job {
	for {
		job, err := eng.GetJob(jobID)
		if err != nil {
			log.Fatalf("Failed to poll ingest job: %v", err)
		}
		switch job.Status {
		case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
			return job
		}
		time.Sleep(jobPollInterval)
	}
}
