package hepmc

import "fmt"

// ErrType classifies the errors returned by the event graph.
type ErrType uint32

const (
	// BarcodeCollision means the suggested barcode was taken by another
	// entity; an automatic barcode was assigned instead.
	BarcodeCollision ErrType = iota
	// WrongSign means the suggested barcode had the wrong sign for the
	// entity type; an automatic barcode was assigned instead.
	WrongSign
	// ForeignEntity means the entity does not belong to the event whose
	// registry was asked to modify it. The request was rejected.
	ForeignEntity
	// NilEntity means a nil particle or vertex was passed in.
	NilEntity
)

// Err is the error type of the event graph. Collisions and wrong signs are
// recoverable (an automatic barcode is substituted), ForeignEntity and
// NilEntity indicate a programming error by the caller.
type Err struct {
	entity  string
	errType ErrType
	barcode int
}

// NewErr creates a new Err.
func NewErr(entity string, errType ErrType, barcode int) Err {
	return Err{
		entity:  entity,
		errType: errType,
		barcode: barcode,
	}
}

// Type returns the ErrType.
func (e Err) Type() ErrType {
	return e.errType
}

// Barcode returns the barcode the error refers to.
func (e Err) Barcode() int {
	return e.barcode
}

// Error implements the error interface.
func (e Err) Error() string {
	m := ""
	switch e.errType {
	case BarcodeCollision:
		m = "Barcode Collision"
	case WrongSign:
		m = "Wrong Sign"
	case ForeignEntity:
		m = "Foreign Entity"
	case NilEntity:
		m = "Nil Entity"
	}

	return fmt.Sprintf("%s, %d, %s", e.entity, e.barcode, m)
}

// Is checks that an error is of type Err and that its code matches the
// provided ErrType.
func Is(err error, t ErrType) bool {
	hErr, ok := err.(Err)
	return ok && hErr.errType == t
}

// IsProgrammerError reports whether err signals a misuse of the API rather
// than a data problem.
func IsProgrammerError(err error) bool {
	return Is(err, ForeignEntity) || Is(err, NilEntity)
}
