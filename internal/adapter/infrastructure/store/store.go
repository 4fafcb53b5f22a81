// Package store provides the key/value status store other processes read
// interface status from.
package store

import (
	"errors"
	"fmt"
	"time"

	"golang-ethmonitor/internal/pkg/logging"
	"golang-ethmonitor/internal/port"

	"github.com/dgraph-io/badger/v3"
	"github.com/goccy/go-json"
)

const keyPrefix = "status/"

// Record is the stored form of a published value.
type Record struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusStore implements the StatusPublisher port on top of badger.
// Writes to a single key are serialized by badger transactions.
type StatusStore struct {
	db  *badger.DB
	now func() time.Time
}

// Ensure StatusStore implements the StatusPublisher port
var _ port.StatusPublisher = (*StatusStore)(nil)

// Open opens the store at path. An empty path keeps the store in memory,
// which loses status on restart.
func Open(path string) (*StatusStore, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open status store %q: %w", path, err)
	}

	logging.WithComponent("store").WithField("path", path).Debug("Status store opened")
	return &StatusStore{db: db, now: time.Now}, nil
}

// Close releases the underlying database.
func (s *StatusStore) Close() error {
	return s.db.Close()
}

// Publish sets key to value.
func (s *StatusStore) Publish(key, value string) error {
	data, err := json.Marshal(Record{Value: value, UpdatedAt: s.now()})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", key, err)
	}

	logging.WithComponent("store").WithFields(map[string]interface{}{
		"key":   key,
		"value": value,
	}).Debug("Published status")
	return nil
}

// Lookup returns the value published for key, or "" if there is none.
func (s *StatusStore) Lookup(key string) (string, error) {
	rec, err := s.get(key)
	if err != nil || rec == nil {
		return "", err
	}
	return rec.Value, nil
}

// get returns the full record for key, or nil if there is none.
func (s *StatusStore) get(key string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec = &Record{}
			return json.Unmarshal(val, rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", key, err)
	}
	return rec, nil
}

// Snapshot returns every published key and value.
func (s *StatusStore) Snapshot() (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var rec Record
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out[string(item.Key()[len(keyPrefix):])] = rec.Value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read status snapshot: %w", err)
	}
	return out, nil
}
