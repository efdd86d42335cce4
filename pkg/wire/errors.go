package wire

import (
	"errors"
	"fmt"
)

// Decoding and encoding errors.
var (
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrInvalidByte     = errors.New("invalid byte")
	ErrInvalidInteger  = errors.New("invalid integer")
	ErrInvalidLength   = errors.New("invalid string length")
	ErrInvalidKey      = errors.New("dictionary key is not a string")
	ErrUnsortedKeys    = errors.New("dictionary keys not in ascending order")
	ErrDuplicateKey    = errors.New("duplicate dictionary key")
	ErrNonCanonical    = errors.New("non-canonical encoding")
	ErrMaxDepth        = errors.New("maximum nesting depth exceeded")
	ErrStringTooLong   = errors.New("string exceeds maximum length")
	ErrTrailingData    = errors.New("trailing data after value")
	ErrNilValue        = errors.New("nil value")
	ErrNotDictionary   = errors.New("value is not a dictionary")
	ErrKeyNotFound     = errors.New("key not found")
	ErrUnsupportedCBOR = errors.New("unsupported CBOR item")
	ErrIntegerOverflow = errors.New("integer out of int64 range")
	ErrInvalidCBORKey  = errors.New("unsupported CBOR map key type")
	ErrCycle           = errors.New("value tree contains a cycle")
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Offset int64
	Err    error
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("bencode: offset %d: %v: %s", e.Offset, e.Err, e.Msg)
	}
	return fmt.Sprintf("bencode: offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxErr(offset int64, err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Err: err, Msg: fmt.Sprintf(format, args...)}
}
