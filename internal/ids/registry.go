// Package ids maintains the persistent registry of company identifiers and
// hands out fresh ones that are guaranteed not to collide with any company
// ever indexed.
package ids

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corpindex/company-search/internal/errors"
)

const (
	bucketCompanyIDs = "company_ids"

	// Generated identifiers fall in this range. Existing identifiers from
	// ingested data may lie outside it and are registered as-is.
	minGeneratedID = 10_000
	maxGeneratedID = 999_999_999

	maxGenerateAttempts = 1000
)

// Registry is a durable set of company IDs backed by a bolt database.
type Registry struct {
	db *bolt.DB
}

// Open opens or creates the registry database at path.
func Open(path string) (*Registry, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open ID registry %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCompanyIDs))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize ID registry: %w", err)
	}

	return &Registry{db: db}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Add registers an identifier. Adding an ID that is already present is not
// an error.
func (r *Registry) Add(id int64) error {
	if id <= 0 {
		return errors.NewValidationError("id", "must be a positive integer")
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCompanyIDs)).Put(encodeID(id), []byte{})
	})
}

// Remove deletes an identifier from the registry. Removing an absent ID is
// a no-op.
func (r *Registry) Remove(id int64) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCompanyIDs)).Delete(encodeID(id))
	})
}

// Contains reports whether an identifier is registered.
func (r *Registry) Contains(id int64) (bool, error) {
	var found bool
	err := r.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(bucketCompanyIDs)).Get(encodeID(id)) != nil
		return nil
	})
	return found, err
}

// Count returns the number of registered identifiers.
func (r *Registry) Count() (int, error) {
	var n int
	err := r.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketCompanyIDs)).Stats().KeyN
		return nil
	})
	return n, err
}

// Generate picks a random unused identifier, registers it, and returns it.
// Registration happens inside a single write transaction so concurrent
// callers never receive the same ID.
func (r *Registry) Generate() (int64, error) {
	var id int64
	err := r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketCompanyIDs))
		for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
			candidate := minGeneratedID + rand.Int63n(maxGeneratedID-minGeneratedID+1)
			key := encodeID(candidate)
			if bucket.Get(key) != nil {
				continue
			}
			if err := bucket.Put(key, []byte{}); err != nil {
				return err
			}
			id = candidate
			return nil
		}
		return fmt.Errorf("exhausted %d attempts to generate a unique company ID", maxGenerateAttempts)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func encodeID(id int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}
