// Package storage keeps game records in a local BadgerDB database.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/hailam/shogiplay/internal/record"
)

// Storage keys
const (
	prefixRecord = "record/"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log logr.Logger
}

// NewStorage opens the database in the platform data directory.
func NewStorage(log logr.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, log)
}

// Open opens or creates the database in dir.
func Open(dir string, log logr.Logger) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = badgerLogger{log.WithName("badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}
	log.V(1).Info("database opened", "dir", dir)

	return &Storage{db: db, log: log}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func recordKey(id string) []byte {
	return []byte(prefixRecord + id)
}

// SaveRecord stores rec, replacing any record with the same ID. A record
// without an ID gets a new one. Returns the ID.
func (s *Storage) SaveRecord(rec *record.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("save record %s: %w", rec.ID, err)
	}
	s.log.V(1).Info("record saved", "id", rec.ID, "moves", len(rec.Moves))
	return rec.ID, nil
}

// LoadRecord loads the record with the given ID.
func (s *Storage) LoadRecord(id string) (*record.Record, error) {
	rec := &record.Record{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", id, err)
	}
	return rec, nil
}

// ListRecords returns every stored record ordered by start time, then ID.
func (s *Storage) ListRecords() ([]*record.Record, error) {
	var records []*record.Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixRecord)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &record.Record{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b *record.Record) int {
		if c := a.Info.StartTime.Compare(b.Info.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return records, nil
}

// DeleteRecord removes the record with the given ID.
func (s *Storage) DeleteRecord(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(recordKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(recordKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	s.log.V(1).Info("record deleted", "id", id)
	return nil
}

// badgerLogger routes badger's logging through logr. Badger is chatty at
// info level, so only warnings and errors are shown by default.
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(nil, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.V(2).Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.V(3).Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
