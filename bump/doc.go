// Package bump implements the program's heap allocator: a bump allocator with
// a single-slot opportunistic free.
//
// # Overview
//
// The loader maps one contiguous heap at format.HeapStartAddress. Its length is
// fixed for the invocation but only known after scanning the input (see
// package heapsize). An Allocator is created once with that length and then
// serves three operations:
//
//   - Alloc(size, align): round the cursor up to align, hand out the block,
//     advance the cursor.
//   - Dealloc(ptr, size, align): if the block is the last allocation, move the
//     cursor back; otherwise leak it.
//   - Realloc(ptr, oldSize, align, newSize): resize the last allocation in
//     place; move anything else.
//
// All size and alignment arithmetic is checked. An overflow is reported as
// ErrOutOfMemory, never as a wrapped in-bounds address.
//
// # Addresses and host memory
//
// Ptr values are virtual addresses in the VM's address space. Bytes maps an
// address range to the host memory behind the heap (see package region).
//
//	virtual   base                     base+cursor        base+length
//	           │◄──── allocated ────────►│◄──── free ───────►│
//	host      mem[0]                   mem[cursor]         mem[length]
//
// # Poke mode
//
// The allocator believes the length it is given. If that length is larger
// than the memory really mapped, the mistake shows up when the program first
// touches the missing bytes, possibly far from the allocation. With poke
// enabled (Options.Poke, or building with -tags poke) Alloc and Realloc touch
// the last byte of each block and raise the *Fault immediately, at the cost of
// one extra memory access per call.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. The VM runs an invocation on a
// single thread.
package bump
