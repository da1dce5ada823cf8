package engine

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/corpindex/company-search/index"
	"github.com/corpindex/company-search/internal/persistence"
	"github.com/corpindex/company-search/store"
)

const (
	invertedIndexFile = "inverted_index.gob"
	companyStoreFile  = "company_store.gob"
	idRegistryFile    = "company_ids.db"
)

// loadIndexData restores the inverted index and company store from the data
// directory, falling back to empty structures when nothing was persisted yet
// or a file is unreadable.
func loadIndexData(dataDir string) (*index.InvertedIndex, *store.CompanyStore) {
	invertedIndex := index.NewInvertedIndex()
	iiPath := filepath.Join(dataDir, invertedIndexFile)
	if err := persistence.LoadGob(iiPath, invertedIndex); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No inverted index at %s, starting empty", iiPath)
		} else {
			log.Printf("Warning: Failed to load inverted index from %s: %v. Starting empty.", iiPath, err)
		}
		invertedIndex = index.NewInvertedIndex()
	}

	companyStore := store.NewCompanyStore()
	csPath := filepath.Join(dataDir, companyStoreFile)
	if err := persistence.LoadGob(csPath, companyStore); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No company store at %s, starting empty", csPath)
		} else {
			log.Printf("Warning: Failed to load company store from %s: %v. Starting empty.", csPath, err)
		}
		companyStore = store.NewCompanyStore()
	}

	return invertedIndex, companyStore
}

// Persist writes the inverted index and company store to the data directory.
// The ID registry persists itself on every write and needs no snapshot.
func (e *Engine) Persist() error {
	if err := persistence.SaveGob(filepath.Join(e.settings.DataDir, invertedIndexFile), e.invertedIndex); err != nil {
		return err
	}
	return persistence.SaveGob(filepath.Join(e.settings.DataDir, companyStoreFile), e.companyStore)
}
