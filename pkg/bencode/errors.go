package bencode

import (
	"errors"
	"fmt"
)

// Contract violation sentinels. A *ContractError panic wraps one of these.
var (
	ErrNilValue        = errors.New("nil value")
	ErrEmptyList       = errors.New("empty list")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidRange    = errors.New("invalid range")
)

// ContractError describes a programmer error detected by a container
// operation. It is raised with panic, never returned.
type ContractError struct {
	Op  string
	Err error
	Msg string
}

func (e *ContractError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("bencode: %s: %v: %s", e.Op, e.Err, e.Msg)
	}
	return fmt.Sprintf("bencode: %s: %v", e.Op, e.Err)
}

// Unwrap returns the sentinel error.
func (e *ContractError) Unwrap() error {
	return e.Err
}

func violation(op string, err error, format string, args ...any) {
	panic(&ContractError{Op: op, Err: err, Msg: fmt.Sprintf(format, args...)})
}
