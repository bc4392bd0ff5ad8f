// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const importedBucket = "imported"

// boltStore keeps one nested bucket per collection under importedBucket;
// keys are DOIs and values the RFC 3339 import time.
type boltStore struct {
	db *bolt.DB
}

func openBolt(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt ledger: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(importedBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing ledger bucket: %w", err)
	}
	return &boltStore{db: db}, nil
}

// collectionBucket names the nested bucket; bbolt rejects empty bucket names.
func collectionBucket(collection string) []byte {
	return []byte("c:" + collection)
}

// Close closes the database file.
func (b *boltStore) Close() error {
	return b.db.Close()
}

// Imported reports whether doi was recorded for collection.
func (b *boltStore) Imported(collection, doi string) (bool, error) {
	doi = normalizeDOI(doi)
	if doi == "" {
		return false, nil
	}
	var found bool
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(importedBucket))
		if root == nil {
			return fmt.Errorf("ledger bucket missing")
		}
		if coll := root.Bucket(collectionBucket(collection)); coll != nil {
			found = coll.Get([]byte(doi)) != nil
		}
		return nil
	})
	return found, err
}

// MarkImported records doi for collection. Recording twice keeps the first
// timestamp.
func (b *boltStore) MarkImported(collection, doi string) error {
	doi = normalizeDOI(doi)
	if doi == "" {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(importedBucket))
		if root == nil {
			return fmt.Errorf("ledger bucket missing")
		}
		coll, err := root.CreateBucketIfNotExists(collectionBucket(collection))
		if err != nil {
			return fmt.Errorf("creating collection bucket: %w", err)
		}
		if coll.Get([]byte(doi)) != nil {
			return nil
		}
		return coll.Put([]byte(doi), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}
