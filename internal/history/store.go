package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/quantmind-br/jesse/internal/domain"
)

// Store is a scan history backed by BadgerDB
type Store struct {
	db        *badger.DB
	retention time.Duration
	stop      chan struct{}
	closeOnce sync.Once
}

// DefaultDirectory returns ~/.jesse/history
func DefaultDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jesse", "history"), nil
}

// Open opens or creates a history store
func Open(opts Options) (*Store, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			dir, err := DefaultDirectory()
			if err != nil {
				return nil, err
			}
			opts.Directory = dir
		}
		if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	if !opts.Logger {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	s := &Store{db: db, retention: opts.Retention, stop: make(chan struct{})}
	if !opts.InMemory {
		go s.collectGarbage()
	}
	return s, nil
}

func (s *Store) collectGarbage() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			_ = s.db.RunValueLogGC(0.5)
		}
	}
}

// Put stores rec, replacing any record with the same UID
func (s *Store) Put(rec Record) error {
	if rec.UID == "" {
		return domain.NewValidationError("uid", "must not be empty")
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		primary := badger.NewEntry([]byte(RecordKey(rec.UID)), value)
		index := badger.NewEntry([]byte(TargetKey(rec.Target, rec.UID)), nil)
		if s.retention > 0 {
			primary = primary.WithTTL(s.retention)
			index = index.WithTTL(s.retention)
		}
		if err := txn.SetEntry(primary); err != nil {
			return err
		}
		return txn.SetEntry(index)
	})
}

// Get returns the record for uid
func (s *Store) Get(uid string) (*Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		return getRecord(txn, uid, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func getRecord(txn *badger.Txn, uid string, rec *Record) error {
	item, err := txn.Get([]byte(RecordKey(uid)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, uid)
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
}

// List returns up to limit records, newest first. A limit of 0 returns all.
func (s *Store) List(limit int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PrefixScan + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ByTarget returns every record of target, newest first
func (s *Store) ByTarget(target string) ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(TargetPrefix(target))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			uid := string(bytes.TrimPrefix(it.Item().Key(), prefix))
			var rec Record
			if err := getRecord(txn, uid, &rec); err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					continue
				}
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(records)
	return records, nil
}

func sortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScannedAt.After(records[j].ScannedAt)
	})
}

// Delete removes the record for uid
func (s *Store) Delete(uid string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var rec Record
		if err := getRecord(txn, uid, &rec); err != nil {
			return err
		}
		if err := txn.Delete([]byte(TargetKey(rec.Target, uid))); err != nil {
			return err
		}
		return txn.Delete([]byte(RecordKey(uid)))
	})
}

// Size returns the number of stored records
func (s *Store) Size() int64 {
	var count int64
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PrefixScan + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count
}

// Clear removes all records
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// Close releases store resources
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.db.Close()
	})
	return err
}
