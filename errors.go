package baum

import (
	"errors"
	"fmt"
)

// Decode failure kinds. Every error returned by the decoders wraps exactly one
// of these in a *DecodeError, so callers can match with errors.Is.
var (
	ErrBadMagic      = errors.New("baum: bad magic")
	ErrInvalidTag    = errors.New("baum: invalid tag")
	ErrUnexpectedEOF = errors.New("baum: unexpected end of input")
	ErrTrailingData  = errors.New("baum: trailing data after root node")
	ErrDepthExceeded = errors.New("baum: nesting depth exceeded")
	ErrTooLarge      = errors.New("baum: input too large")
)

// DecodeError describes the first structural violation found in an input.
type DecodeError struct {
	Err    error // one of the Err* kinds, or a context error
	Offset int   // byte offset of the violation in the input
	Tag    byte  // offending tag byte (ErrInvalidTag)
	Need   uint64
	Have   int
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidTag):
		return fmt.Sprintf("%v 0x%02x at offset %d", e.Err, e.Tag, e.Offset)
	case errors.Is(e.Err, ErrUnexpectedEOF):
		return fmt.Sprintf("%v at offset %d: need %d bytes, have %d", e.Err, e.Offset, e.Need, e.Have)
	case errors.Is(e.Err, ErrTrailingData):
		return fmt.Sprintf("%v: %d bytes at offset %d", e.Err, e.Have, e.Offset)
	case errors.Is(e.Err, ErrDepthExceeded):
		return fmt.Sprintf("%v at offset %d: limit %d", e.Err, e.Offset, e.Need)
	case errors.Is(e.Err, ErrTooLarge):
		return fmt.Sprintf("%v: %d bytes > %d", e.Err, e.Have, e.Need)
	default:
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SyntaxError is returned by ParseText for malformed text notation.
type SyntaxError struct {
	Offset int // byte offset in the input string
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("baum: syntax error at offset %d: %s", e.Offset, e.Msg)
}
