package entrypoint

import "errors"

var (
	// ErrAlreadyRunning indicates Run was called while another invocation
	// was still running.
	ErrAlreadyRunning = errors.New("entrypoint: invocation already running")

	// ErrSlotTooLarge indicates the global state does not fit in the heap
	// the platform guarantees.
	ErrSlotTooLarge = errors.New("entrypoint: global state exceeds guaranteed heap")
)
