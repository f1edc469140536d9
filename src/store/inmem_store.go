package store

import (
	"strconv"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	cm "github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

// InmemStore implements the Store interface with a bounded in-memory cache of
// event records. When the cache is full the oldest record is evicted, so
// InmemStore alone is not suitable for archiving long runs.
type InmemStore struct {
	cacheSize int
	records   *linkedhashmap.Map //event number => *hepmc.Record, insertion order
	closed    bool
}

// NewInmemStore creates a new InmemStore holding at most cacheSize events.
func NewInmemStore(cacheSize int) *InmemStore {
	return &InmemStore{
		cacheSize: cacheSize,
		records:   linkedhashmap.New(),
	}
}

// CacheSize implements the Store interface.
func (s *InmemStore) CacheSize() int {
	return s.cacheSize
}

// GetEvent implements the Store interface.
func (s *InmemStore) GetEvent(number int) (*hepmc.Event, error) {
	rec, err := s.getRecord(number)
	if err != nil {
		return nil, err
	}
	return hepmc.FromRecord(rec)
}

// SetEvent implements the Store interface. Storing an event number that is
// already cached fails with KeyAlreadyExists.
func (s *InmemStore) SetEvent(evt *hepmc.Event) error {
	if s.closed {
		return cm.NewStoreErr("Event", cm.Closed, strconv.Itoa(evt.EventNumber))
	}
	if _, ok := s.records.Get(evt.EventNumber); ok {
		return cm.NewStoreErr("Event", cm.KeyAlreadyExists, strconv.Itoa(evt.EventNumber))
	}
	s.putRecord(evt.EventNumber, evt.ToRecord())
	return nil
}

// EventNumbers implements the Store interface. Numbers come in insertion
// order.
func (s *InmemStore) EventNumbers() ([]int, error) {
	if s.closed {
		return nil, cm.NewStoreErr("Event", cm.Closed, "")
	}
	numbers := make([]int, 0, s.records.Size())
	for _, k := range s.records.Keys() {
		numbers = append(numbers, k.(int))
	}
	return numbers, nil
}

// Len implements the Store interface.
func (s *InmemStore) Len() (int, error) {
	if s.closed {
		return 0, cm.NewStoreErr("Event", cm.Closed, "")
	}
	return s.records.Size(), nil
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	s.records.Clear()
	s.closed = true
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}

func (s *InmemStore) getRecord(number int) (*hepmc.Record, error) {
	key := strconv.Itoa(number)
	if s.closed {
		return nil, cm.NewStoreErr("Event", cm.Closed, key)
	}
	rec, ok := s.records.Get(number)
	if !ok {
		return nil, cm.NewStoreErr("Event", cm.KeyNotFound, key)
	}
	return rec.(*hepmc.Record), nil
}

// putRecord caches rec, evicting the oldest records beyond cacheSize.
func (s *InmemStore) putRecord(number int, rec *hepmc.Record) {
	s.records.Put(number, rec)
	for s.cacheSize > 0 && s.records.Size() > s.cacheSize {
		it := s.records.Iterator()
		if !it.First() {
			return
		}
		s.records.Remove(it.Key())
	}
}
