package index

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// InvertedIndex maps, per field, an analyzed term to the set of documents
// containing it. Keyword sub-field values are kept in a separate posting map
// keyed by "field.sub" so exact-match filters never collide with analyzed
// terms. Posting sets are roaring bitmaps over internal document IDs.
type InvertedIndex struct {
	Mu sync.RWMutex
	// Fields maps field name -> term -> documents.
	Fields map[string]map[string]*roaring.Bitmap
	// Keywords maps "field.sub" path -> raw value -> documents.
	Keywords map[string]map[string]*roaring.Bitmap
}

// NewInvertedIndex returns an empty, initialized index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		Fields:   make(map[string]map[string]*roaring.Bitmap),
		Keywords: make(map[string]map[string]*roaring.Bitmap),
	}
}

// AddTerm records that docID contains term in the given field.
// Caller must hold Mu.
func (ii *InvertedIndex) AddTerm(field, term string, docID uint32) {
	terms, ok := ii.Fields[field]
	if !ok {
		terms = make(map[string]*roaring.Bitmap)
		ii.Fields[field] = terms
	}
	bm, ok := terms[term]
	if !ok {
		bm = roaring.New()
		terms[term] = bm
	}
	bm.Add(docID)
}

// AddKeyword records a raw keyword value for an exact-match path.
// Caller must hold Mu.
func (ii *InvertedIndex) AddKeyword(path, value string, docID uint32) {
	values, ok := ii.Keywords[path]
	if !ok {
		values = make(map[string]*roaring.Bitmap)
		ii.Keywords[path] = values
	}
	bm, ok := values[value]
	if !ok {
		bm = roaring.New()
		values[value] = bm
	}
	bm.Add(docID)
}

// RemoveDocument deletes docID from every posting set, dropping terms whose
// posting set becomes empty. Caller must hold Mu.
func (ii *InvertedIndex) RemoveDocument(docID uint32) {
	for _, terms := range ii.Fields {
		for term, bm := range terms {
			bm.Remove(docID)
			if bm.IsEmpty() {
				delete(terms, term)
			}
		}
	}
	for _, values := range ii.Keywords {
		for value, bm := range values {
			bm.Remove(docID)
			if bm.IsEmpty() {
				delete(values, value)
			}
		}
	}
}

// Postings returns the posting set for (field, term), or nil.
// Caller must hold Mu for reading.
func (ii *InvertedIndex) Postings(field, term string) *roaring.Bitmap {
	terms, ok := ii.Fields[field]
	if !ok {
		return nil
	}
	return terms[term]
}

// KeywordPostings returns the posting set for an exact-match path and value,
// or nil. Caller must hold Mu for reading.
func (ii *InvertedIndex) KeywordPostings(path, value string) *roaring.Bitmap {
	values, ok := ii.Keywords[path]
	if !ok {
		return nil
	}
	return values[value]
}

// Terms returns every indexed term of a field. Caller must hold Mu for
// reading. Used by typo-tolerant matching to scan candidate terms.
func (ii *InvertedIndex) Terms(field string) []string {
	terms, ok := ii.Fields[field]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(terms))
	for term := range terms {
		out = append(out, term)
	}
	return out
}

// gobInvertedIndexData is a helper struct for Gob encoding/decoding. It
// excludes the mutex and carries bitmaps in their portable binary form.
type gobInvertedIndexData struct {
	Fields   map[string]map[string][]byte
	Keywords map[string]map[string][]byte
}

func marshalPostings(src map[string]map[string]*roaring.Bitmap) (map[string]map[string][]byte, error) {
	out := make(map[string]map[string][]byte, len(src))
	for field, terms := range src {
		encoded := make(map[string][]byte, len(terms))
		for term, bm := range terms {
			data, err := bm.MarshalBinary()
			if err != nil {
				return nil, err
			}
			encoded[term] = data
		}
		out[field] = encoded
	}
	return out, nil
}

func unmarshalPostings(src map[string]map[string][]byte) (map[string]map[string]*roaring.Bitmap, error) {
	out := make(map[string]map[string]*roaring.Bitmap, len(src))
	for field, terms := range src {
		decoded := make(map[string]*roaring.Bitmap, len(terms))
		for term, data := range terms {
			bm := roaring.New()
			if err := bm.UnmarshalBinary(data); err != nil {
				return nil, err
			}
			decoded[term] = bm
		}
		out[field] = decoded
	}
	return out, nil
}

// GobEncode implements the gob.GobEncoder interface for InvertedIndex.
func (ii *InvertedIndex) GobEncode() ([]byte, error) {
	ii.Mu.RLock() // Ensure consistent data during encoding
	defer ii.Mu.RUnlock()

	fields, err := marshalPostings(ii.Fields)
	if err != nil {
		return nil, err
	}
	keywords, err := marshalPostings(ii.Keywords)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(gobInvertedIndexData{Fields: fields, Keywords: keywords}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for InvertedIndex.
func (ii *InvertedIndex) GobDecode(data []byte) error {
	decodedData := gobInvertedIndexData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	fields, err := unmarshalPostings(decodedData.Fields)
	if err != nil {
		return err
	}
	keywords, err := unmarshalPostings(decodedData.Keywords)
	if err != nil {
		return err
	}

	ii.Mu.Lock()
	defer ii.Mu.Unlock()

	ii.Fields = fields
	ii.Keywords = keywords

	// Ensure maps are initialized if they were nil after decoding (e.g. from
	// an empty file).
	if ii.Fields == nil {
		ii.Fields = make(map[string]map[string]*roaring.Bitmap)
	}
	if ii.Keywords == nil {
		ii.Keywords = make(map[string]map[string]*roaring.Bitmap)
	}
	return nil
}
