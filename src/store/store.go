package store

import "github.com/mosaicnetworks/hepmc/src/hepmc"

// Store is an interface for event archives. Events are keyed by their event
// number.
type Store interface {
	// CacheSize retrieves the maximum number of events kept in memory.
	CacheSize() int
	// GetEvent returns a fresh copy of the event stored under number.
	GetEvent(number int) (*hepmc.Event, error)
	// SetEvent stores a snapshot of the event under its event number.
	SetEvent(evt *hepmc.Event) error
	// EventNumbers returns the numbers of the stored events.
	EventNumbers() ([]int, error)
	// Len returns the number of stored events.
	Len() (int, error)
	// Close releases the resources held by the store.
	Close() error
	// StorePath returns the directory of persistent stores, or "".
	StorePath() string
}
