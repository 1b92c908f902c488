package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/covenantsorg/libcovenant-go/params"
)

var bucketCovenants = []byte("covenants")

// CacheEntry is a covenant's last-known deployment record: enough to
// re-instantiate the contract and fetch its UTXO set. The on-chain UTXO
// remains authoritative; a stale entry is corrected by re-deriving from
// chain, never trusted over it.
type CacheEntry struct {
	Type    CovenantType `json:"type"`
	Address string       `json:"address"`
	Params  params.List  `json:"params"`
}

// CovenantCache persists CacheEntry records in bbolt, keyed by covenant id.
type CovenantCache struct {
	db *bbolt.DB
}

// OpenCovenantCache opens or creates the cache database at dbPath. The
// parent directory is created if it does not exist.
func OpenCovenantCache(dbPath string) (*CovenantCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("registry: create cache directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: open cache db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCovenants)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: create cache bucket: %w", err)
	}
	return &CovenantCache{db: db}, nil
}

// Close closes the underlying database.
func (c *CovenantCache) Close() error { return c.db.Close() }

// Put stores or replaces the entry for a covenant id.
func (c *CovenantCache) Put(id string, entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	if id == "" {
		return fmt.Errorf("%w: id", ErrNilParam)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("registry: marshal cache entry: %w", err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCovenants).Put([]byte(id), data)
	})
}

// Get retrieves the entry for a covenant id.
func (c *CovenantCache) Get(id string) (*CacheEntry, error) {
	var entry CacheEntry
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCovenants).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %q", ErrNotCached, id)
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes the entry for a covenant id. Deleting a missing id is not
// an error.
func (c *CovenantCache) Delete(id string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCovenants).Delete([]byte(id))
	})
}

// List returns all cached entries keyed by covenant id.
func (c *CovenantCache) List() (map[string]*CacheEntry, error) {
	out := make(map[string]*CacheEntry)
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCovenants).ForEach(func(k, v []byte) error {
			var entry CacheEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("registry: decode cache entry %q: %w", k, err)
			}
			out[string(k)] = &entry
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
