package store

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cm "github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

const eventPrefix = "event"

// BadgerStore persists event records in a badger database and keeps the most
// recent ones in an InmemStore.
type BadgerStore struct {
	inmemStore *InmemStore
	db         *badger.DB
	path       string
	logger     *logrus.Entry
}

// NewBadgerStore creates a brand new Store with a new database.
func NewBadgerStore(cacheSize int, path string, logger *logrus.Entry) (*BadgerStore, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	handle, err := openDB(path, logger)
	if err != nil {
		return nil, err
	}
	store := &BadgerStore{
		inmemStore: NewInmemStore(cacheSize),
		db:         handle,
		path:       path,
		logger:     logger,
	}
	return store, nil
}

// LoadBadgerStore creates a Store from an existing database.
func LoadBadgerStore(cacheSize int, path string, logger *logrus.Entry) (*BadgerStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return NewBadgerStore(cacheSize, path, logger)
}

// LoadOrCreateBadgerStore loads the database at path, creating it if it does
// not exist.
func LoadOrCreateBadgerStore(cacheSize int, path string, logger *logrus.Entry) (*BadgerStore, error) {
	store, err := LoadBadgerStore(cacheSize, path, logger)

	if err != nil {
		store, err = NewBadgerStore(cacheSize, path, logger)

		if err != nil {
			return nil, err
		}
	}

	return store, nil
}

func openDB(path string, logger *logrus.Entry) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	opts.Logger = logger.WithField("prefix", "badger")
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening badger database %s", path)
	}
	return db, nil
}

//==============================================================================
//Keys

func eventKey(number int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", eventPrefix, number))
}

func eventNumberFromKey(key []byte) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(string(key), eventPrefix+"_"))
}

//==============================================================================
//Implement the Store interface

// CacheSize implements the Store interface.
func (s *BadgerStore) CacheSize() int {
	return s.inmemStore.CacheSize()
}

// GetEvent implements the Store interface.
func (s *BadgerStore) GetEvent(number int) (*hepmc.Event, error) {
	//try to get it from cache
	rec, err := s.inmemStore.getRecord(number)
	//if not in cache, try to get it from db
	if err != nil && !cm.IsStore(err, cm.Closed) {
		rec, err = s.dbGetRecord(number)
		if err == nil {
			s.inmemStore.putRecord(number, rec)
		}
	}
	if err != nil {
		return nil, mapError(err, "Event", strconv.Itoa(number))
	}
	return hepmc.FromRecord(rec)
}

// SetEvent implements the Store interface. Event numbers already in the
// database are refused with KeyAlreadyExists.
func (s *BadgerStore) SetEvent(evt *hepmc.Event) error {
	key := strconv.Itoa(evt.EventNumber)
	if s.inmemStore.closed {
		return cm.NewStoreErr("Event", cm.Closed, key)
	}

	_, err := s.dbGetRecord(evt.EventNumber)
	if err == nil {
		return cm.NewStoreErr("Event", cm.KeyAlreadyExists, key)
	}
	if !isDBKeyNotFound(err) {
		return err
	}

	rec := evt.ToRecord()
	if err := s.dbSetRecord(evt.EventNumber, rec); err != nil {
		return err
	}
	s.inmemStore.putRecord(evt.EventNumber, rec)

	s.logger.WithField("event", evt.EventNumber).Debug("Event archived")

	return nil
}

// EventNumbers implements the Store interface. Numbers are sorted in
// ascending order.
func (s *BadgerStore) EventNumbers() ([]int, error) {
	if s.inmemStore.closed {
		return nil, cm.NewStoreErr("Event", cm.Closed, "")
	}
	numbers, err := s.dbEventNumbers()
	if err != nil {
		return nil, err
	}
	sort.Ints(numbers)
	return numbers, nil
}

// Len implements the Store interface.
func (s *BadgerStore) Len() (int, error) {
	numbers, err := s.EventNumbers()
	if err != nil {
		return 0, err
	}
	return len(numbers), nil
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	if s.inmemStore.closed {
		return nil
	}
	if err := s.inmemStore.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

//==============================================================================
//DB Methods

func (s *BadgerStore) dbGetRecord(number int) (*hepmc.Record, error) {
	var recBytes []byte
	key := eventKey(number)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		recBytes, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return nil, err
	}

	rec := new(hepmc.Record)
	if err := rec.Unmarshal(recBytes); err != nil {
		return nil, errors.Wrapf(err, "decoding event %d", number)
	}

	return rec, nil
}

func (s *BadgerStore) dbSetRecord(number int, rec *hepmc.Record) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	key := eventKey(number)
	val, err := rec.Marshal()
	if err != nil {
		return errors.Wrapf(err, "encoding event %d", number)
	}

	//insert [event number] => [record bytes]
	if err := tx.Set(key, val); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *BadgerStore) dbEventNumbers() ([]int, error) {
	numbers := []int{}
	prefix := []byte(eventPrefix + "_")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n, err := eventNumberFromKey(it.Item().KeyCopy(nil))
			if err != nil {
				return err
			}
			numbers = append(numbers, n)
		}
		return nil
	})
	return numbers, err
}

//++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++

func isDBKeyNotFound(err error) bool {
	return err != nil && err.Error() == badger.ErrKeyNotFound.Error()
}

func mapError(err error, name, key string) error {
	if err != nil {
		if isDBKeyNotFound(err) {
			return cm.NewStoreErr(name, cm.KeyNotFound, key)
		}
	}
	return err
}
