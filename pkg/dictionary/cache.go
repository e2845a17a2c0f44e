package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketLexicons = []byte("lexicons")

// ErrNotCached is returned by Cache.Get for unknown sources.
var ErrNotCached = errors.New("lexicon not cached")

// Cache keeps the last successfully fetched copy of each remote lexicon in
// a bbolt file, keyed by URL.
type Cache struct {
	db *bolt.DB
}

type cachedLexicon struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// OpenCache opens (or creates) the cache file at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLexicons)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying bbolt database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores body as the current copy of url.
func (c *Cache) Put(url string, body []byte) error {
	if !json.Valid(body) {
		return fmt.Errorf("refusing to cache invalid JSON for %s", url)
	}
	value, err := json.Marshal(cachedLexicon{FetchedAt: time.Now().UTC(), Body: body})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLexicons).Put([]byte(url), value)
	})
}

// Get returns the cached body of url and when it was fetched.
func (c *Cache) Get(url string) ([]byte, time.Time, error) {
	var entry cachedLexicon
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLexicons).Get([]byte(url))
		if v == nil {
			return ErrNotCached
		}
		// v is only valid inside the transaction; Unmarshal copies.
		return json.Unmarshal(v, &entry)
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return entry.Body, entry.FetchedAt, nil
}
