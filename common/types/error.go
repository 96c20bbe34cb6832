package types

import (
	"errors"
	"fmt"
)

// StatusCode is the numeric form of a container error. Success is zero and every
// failure is negative.
type StatusCode int

const (
	Success StatusCode = -iota
	NullPointer
	NullData
	InvalidArgument
	// MemAllocationError is reserved. The Go runtime aborts on allocation failure, so no
	// container ever returns it.
	MemAllocationError
	Overflow
	Underflow
	EmptyList
	ItemNotFound
)

var (
	ErrNullPointer        = errors.New("null pointer")
	ErrNullData           = errors.New("null data")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrMemAllocationError = errors.New("memory allocation error")
	ErrOverflow           = errors.New("overflow")
	ErrUnderflow          = errors.New("underflow")
	ErrEmptyList          = errors.New("empty list")
	ErrItemNotFound       = errors.New("item not found")

	// ErrDestroyed is returned by every operation on a container after Destroy (or Delete) has been called.
	ErrDestroyed = fmt.Errorf("%w: container has been destroyed", ErrNullPointer)
)

var statusErrors = []struct {
	code StatusCode
	err  error
}{
	{NullPointer, ErrNullPointer},
	{NullData, ErrNullData},
	{InvalidArgument, ErrInvalidArgument},
	{MemAllocationError, ErrMemAllocationError},
	{Overflow, ErrOverflow},
	{Underflow, ErrUnderflow},
	{EmptyList, ErrEmptyList},
	{ItemNotFound, ErrItemNotFound},
}

// StatusOf maps err to its StatusCode. Wrapped errors are unwrapped. A nil error is
// Success, and an error that wraps none of the sentinels is InvalidArgument.
func StatusOf(err error) StatusCode {
	if err == nil {
		return Success
	}

	for _, se := range statusErrors {
		if errors.Is(err, se.err) {
			return se.code
		}
	}

	return InvalidArgument
}

// Err returns the sentinel error for the code, or nil for Success.
func (c StatusCode) Err() error {
	for _, se := range statusErrors {
		if se.code == c {
			return se.err
		}
	}

	return nil
}

func (c StatusCode) String() string {
	switch c {
	case Success:
		return "Success"
	case NullPointer:
		return "NullPointer"
	case NullData:
		return "NullData"
	case InvalidArgument:
		return "InvalidArgument"
	case MemAllocationError:
		return "MemAllocationError"
	case Overflow:
		return "Overflow"
	case Underflow:
		return "Underflow"
	case EmptyList:
		return "EmptyList"
	case ItemNotFound:
		return "ItemNotFound"
	default:
		return fmt.Sprintf("StatusCode(%d)", int(c))
	}
}
