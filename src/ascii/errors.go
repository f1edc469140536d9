package ascii

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidStreamMode is returned when a File is opened with an unusable
// mode, or when a read is attempted on a write file and vice versa.
var ErrInvalidStreamMode = errors.New("invalid stream mode")

// ParseError reports a malformed record. The reader has already skipped to
// the next event or listing key when it is returned, so reading can go on.
type ParseError struct {
	Line        int
	Record      string
	Description string
}

func (e *ParseError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Description)
	}
	return fmt.Sprintf("line %d: %s record: %s", e.Line, e.Record, e.Description)
}

// ReferenceError reports a particle whose end vertex barcode does not match
// any vertex of its event.
type ReferenceError struct {
	Particle int
	Vertex   int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("particle %d: end vertex %d not found in event", e.Particle, e.Vertex)
}

// StreamError reports a stream that cannot be read any further: an I/O
// failure or a listing that ends without its end key.
type StreamError struct {
	Line        int
	Description string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Description)
}

// IsParseError reports whether err, or its cause, is a ParseError.
func IsParseError(err error) bool {
	_, ok := errors.Cause(err).(*ParseError)
	return ok
}

// IsReferenceError reports whether err, or its cause, is a ReferenceError.
func IsReferenceError(err error) bool {
	_, ok := errors.Cause(err).(*ReferenceError)
	return ok
}

// IsStreamError reports whether err, or its cause, is a StreamError.
func IsStreamError(err error) bool {
	_, ok := errors.Cause(err).(*StreamError)
	return ok
}
