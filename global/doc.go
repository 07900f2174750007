// Package global hosts one mutable, program-wide value inside the heap.
//
// The VM rejects binaries with writable static data, so a program cannot keep
// a counter or a cache in a package variable. Instead, the host carves a small
// slot off the front of the heap before the allocator takes the rest:
//
//	heap start
//	│ flag │ pad │ G payload │ pad │ bump allocator region ...
//	└────── Slot[G] ──────────────┘
//
// The first call to Get zeroes the payload and sets the flag; later calls
// return the same storage untouched. The bump allocator never sees the slot,
// so ordinary allocation traffic cannot overwrite it.
//
// G must be valid when all its bytes are zero and must not contain Go
// pointers: heap memory is not scanned by the Go garbage collector.
package global
