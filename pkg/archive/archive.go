// Package archive persists decoded records as JSON documents in a
// local pebble database, keyed by ksuid so that iteration order tracks
// insertion order.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/records"
)

// ErrNotFound is returned by Get when no entry has the given id.
var ErrNotFound = errors.New("archive: entry not found")

// Entry is one archived record, as stored and as served.
type Entry struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Record json.RawMessage `json:"record"`
}

// Store is an archive of decoded records.
type Store struct {
	db    *pebble.DB
	epoch devicetime.Epoch
}

// Open opens (creating if needed) the archive at path. Exports written
// through Put use the given device epoch.
func Open(path string, epoch devicetime.Epoch) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, epoch: epoch}, nil
}

// Put archives one decoded record and returns its id.
func (s *Store) Put(kind records.Type, rec records.Decoded) (ksuid.KSUID, error) {
	id := ksuid.New()

	record, err := json.Marshal(rec.Export(s.epoch))
	if err != nil {
		return ksuid.Nil, fmt.Errorf("marshal %s record: %w", kind, err)
	}

	entry := Entry{
		ID:     id.String(),
		Type:   kind.String(),
		Record: record,
	}
	value, err := json.Marshal(&entry)
	if err != nil {
		return ksuid.Nil, err
	}

	if err := s.db.Set(id.Bytes(), value, pebble.NoSync); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *Store) Get(id ksuid.KSUID) (*Entry, error) {
	value, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	var entry Entry
	if err := json.Unmarshal(value, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns up to limit entries in insertion order. A limit of 0
// or less means no limit.
func (s *Store) List(limit int) ([]*Entry, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []*Entry
	for iter.First(); iter.Valid(); iter.Next() {
		if limit > 0 && len(entries) >= limit {
			break
		}
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of archived entries.
func (s *Store) Count() (int, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	n := 0
	for iter.First(); iter.Valid(); iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
