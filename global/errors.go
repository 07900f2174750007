package global

import "errors"

var (
	// ErrTooLarge indicates the slot does not fit in the heap.
	ErrTooLarge = errors.New("global: state too large for heap")

	// ErrPointerful indicates the state type contains Go pointers.
	ErrPointerful = errors.New("global: state type must not contain pointers")
)
