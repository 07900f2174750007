// Package region provides host memory that backs a program heap.
//
// The allocator only needs a byte slice whose first byte is the heap start.
// Where that slice comes from decides how faithfully the VM is modeled:
//
//   - Slice: an ordinary Go slice. Cheap, used by tests.
//   - Mapped: an anonymous private mapping, zero-filled by the kernel like
//     the loader's heap, released with Close.
//   - Wasm: the linear memory of a WebAssembly module instance hosted by
//     wazero, so the heap lives inside a real sandboxed VM.
//
// Memory handed out by every backend starts zeroed.
package region

import "errors"

// ErrBadSize indicates a non-positive or unsupported region size.
var ErrBadSize = errors.New("region: invalid size")

// Memory is host memory backing a heap.
type Memory interface {
	// Bytes returns the whole region. The slice stays valid until Close.
	Bytes() []byte
	// Close releases the region. Further use of Bytes is undefined.
	Close() error
}

// Kind names a backend for configuration surfaces.
type Kind string

const (
	KindSlice  Kind = "slice"
	KindMapped Kind = "mmap"
	KindWasm   Kind = "wasm"
)
