package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/corpindex/company-search/model"
)

// CompanyStore holds the full documents and the mapping between the
// user-facing company ID and the internal uint32 ID used in posting sets.
type CompanyStore struct {
	Mu           sync.RWMutex
	Docs         map[uint32]model.Company
	CompanyToDoc map[int64]uint32
	NextID       uint32
}

// NewCompanyStore returns an empty, initialized store.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{
		Docs:         make(map[uint32]model.Company),
		CompanyToDoc: make(map[int64]uint32),
	}
}

// Put stores a company and returns its internal doc ID, reusing the existing
// ID when the company was stored before. Caller must hold Mu.
func (cs *CompanyStore) Put(company model.Company) uint32 {
	if docID, ok := cs.CompanyToDoc[company.ID]; ok {
		cs.Docs[docID] = company
		return docID
	}
	docID := cs.NextID
	cs.NextID++
	cs.Docs[docID] = company
	cs.CompanyToDoc[company.ID] = docID
	return docID
}

// Get returns the company by user-facing ID. Caller must hold Mu for reading.
func (cs *CompanyStore) Get(companyID int64) (model.Company, bool) {
	docID, ok := cs.CompanyToDoc[companyID]
	if !ok {
		return model.Company{}, false
	}
	company, ok := cs.Docs[docID]
	return company, ok
}

// GetByDocID returns the company by internal ID. Caller must hold Mu for
// reading.
func (cs *CompanyStore) GetByDocID(docID uint32) (model.Company, bool) {
	company, ok := cs.Docs[docID]
	return company, ok
}

// Delete removes a company and returns its internal doc ID. Caller must hold
// Mu.
func (cs *CompanyStore) Delete(companyID int64) (uint32, bool) {
	docID, ok := cs.CompanyToDoc[companyID]
	if !ok {
		return 0, false
	}
	delete(cs.Docs, docID)
	delete(cs.CompanyToDoc, companyID)
	return docID, true
}

// Count returns the number of stored companies. Caller must hold Mu for
// reading.
func (cs *CompanyStore) Count() int {
	return len(cs.Docs)
}

// gobCompanyStoreData is a helper struct for Gob encoding/decoding
// CompanyStore data. It excludes the mutex.
type gobCompanyStoreData struct {
	Docs         map[uint32]model.Company
	CompanyToDoc map[int64]uint32
	NextID       uint32
}

// GobEncode implements the gob.GobEncoder interface for CompanyStore.
func (cs *CompanyStore) GobEncode() ([]byte, error) {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()

	dataToEncode := gobCompanyStoreData{
		Docs:         cs.Docs,
		CompanyToDoc: cs.CompanyToDoc,
		NextID:       cs.NextID,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode company store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for CompanyStore.
func (cs *CompanyStore) GobDecode(data []byte) error {
	decodedData := gobCompanyStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode company store data: %w", err)
	}

	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	cs.Docs = decodedData.Docs
	cs.CompanyToDoc = decodedData.CompanyToDoc
	cs.NextID = decodedData.NextID

	// Ensure maps are initialized if they were nil after decoding
	if cs.Docs == nil {
		cs.Docs = make(map[uint32]model.Company)
	}
	if cs.CompanyToDoc == nil {
		cs.CompanyToDoc = make(map[int64]uint32)
	}
	return nil
}
