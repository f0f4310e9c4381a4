// Package history keeps run records in a local bbolt file.
//
// Buckets:
//
//	runs        RunRecord JSON keyed by run id
//	account_idx account|generated_at|id -> id, for newest-first listing
//	_meta       schema version, created_at
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	bolt "go.etcd.io/bbolt"

	"pbx-insights-go/internal/types"
)

const schemaVersion = 1

var (
	bucketRuns     = []byte("runs")
	bucketAccounts = []byte("account_idx")
	bucketInternal = []byte("_meta")
)

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path. A file locked by another
// process is retried until maxWait elapses.
func Open(path string, maxWait time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	var db *bolt.DB
	op := func() error {
		var err error
		db, err = bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
		if err == nil {
			return nil
		}
		if errors.Is(err, bolt.ErrTimeout) {
			return err
		}
		return backoff.Permanent(err)
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketRuns, bucketAccounts, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

func accountPrefix(accountID string) []byte {
	return []byte(accountID + "|")
}

func accountKey(rec types.RunRecord) []byte {
	return []byte(fmt.Sprintf("%s|%020d|%s", rec.AccountID, rec.GeneratedAt, rec.ID))
}

// Save stores rec, replacing any record with the same id.
func (s *Store) Save(rec types.RunRecord) error {
	if rec.ID == "" {
		return errors.New("run record has no id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if old := runs.Get([]byte(rec.ID)); old != nil {
			var prev types.RunRecord
			if err := json.Unmarshal(old, &prev); err == nil {
				if err := tx.Bucket(bucketAccounts).Delete(accountKey(prev)); err != nil {
					return err
				}
			}
		}
		if err := runs.Put([]byte(rec.ID), data); err != nil {
			return err
		}
		return tx.Bucket(bucketAccounts).Put(accountKey(rec), []byte(rec.ID))
	})
}

// Get returns (rec, true, nil) when found and (zero, false, nil) otherwise.
func (s *Store) Get(id string) (types.RunRecord, bool, error) {
	var rec types.RunRecord
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketRuns).Get([]byte(id))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return types.RunRecord{}, false, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return rec, found, nil
}

// List returns an account's records, newest first. limit <= 0 means all.
func (s *Store) List(accountID string, limit int) ([]types.RunRecord, error) {
	out := []types.RunRecord{}
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		prefix := accountPrefix(accountID)

		var ids [][]byte
		c := tx.Bucket(bucketAccounts).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			ids = append(ids, v)
		}
		for i := len(ids) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			raw := runs.Get(ids[i])
			if raw == nil {
				continue
			}
			var rec types.RunRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

// Prune deletes records whose expiry is at or before now and reports how
// many went.
func (s *Store) Prune(now time.Time) (int, error) {
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		idx := tx.Bucket(bucketAccounts)

		var expired []types.RunRecord
		err := runs.ForEach(func(k, v []byte) error {
			var rec types.RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if rec.ExpiresAt <= now.Unix() {
				expired = append(expired, rec)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, rec := range expired {
			if err := runs.Delete([]byte(rec.ID)); err != nil {
				return err
			}
			if err := idx.Delete(accountKey(rec)); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketRuns).Stats().KeyN
		return nil
	})
	return n, err
}
