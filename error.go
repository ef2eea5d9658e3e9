package slcan

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed hex or out of range arguments
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidData is returned when an adapter response cannot be decoded
	ErrInvalidData = errors.New("invalid data")
	// ErrTimedOut is returned when a command response lacks the CR terminator
	ErrTimedOut = errors.New("timed out")
	// ErrIO is returned when the transport fails
	ErrIO = errors.New("i/o error")

	ErrChannelOpen   = errors.New("channel is open")
	ErrChannelClosed = errors.New("channel is closed")
)

// Error carries the operation that failed, the error kind and the underlying cause.
// errors.Is matches the kind and anything in the cause chain.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func newError(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// cause strips the kind from an *Error so that re-wrapping under another kind
// leaves exactly one kind in the chain
func cause(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err
	}
	return err
}

// Kind returns the error kind of err, or nil if err was not produced by this package
func Kind(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
