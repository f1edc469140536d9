package common

import "fmt"

// StoreErrType enumerates the failures of an event store.
type StoreErrType uint32

const (
	// KeyNotFound is returned when no event is stored under a key.
	KeyNotFound StoreErrType = iota
	// KeyAlreadyExists is returned when an event number is stored twice.
	KeyAlreadyExists
	// Empty is returned when reading bounds of an empty store.
	Empty
	// Closed is returned by operations on a closed store.
	Closed
)

// StoreErr is the error returned by event stores.
type StoreErr struct {
	dataType string
	errType  StoreErrType
	key      string
}

// NewStoreErr creates a StoreErr about a value of dataType stored under key.
func NewStoreErr(dataType string, errType StoreErrType, key string) StoreErr {
	return StoreErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Type returns the failure kind.
func (e StoreErr) Type() StoreErrType {
	return e.errType
}

// Error implements the error interface.
func (e StoreErr) Error() string {
	m := ""
	switch e.errType {
	case KeyNotFound:
		m = "Not Found"
	case KeyAlreadyExists:
		m = "Key Already Exists"
	case Empty:
		m = "Empty"
	case Closed:
		m = "Closed"
	}

	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, m)
}

// IsStore checks that an error is of type StoreErr and that its code matches
// the provided StoreErr code.
func IsStore(err error, t StoreErrType) bool {
	storeErr, ok := err.(StoreErr)
	return ok && storeErr.errType == t
}
