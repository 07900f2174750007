// Package heapsize recovers the heap size granted to the current invocation
// from the raw entrypoint input, before any allocator exists.
//
// # Why scan raw bytes
//
// The loader gives every invocation a heap of at least 32 KiB. A transaction
// may ask for more with the compute budget program's RequestHeapFrame
// instruction, but the program is never told the result directly. The only
// place the request is visible is the instructions sysvar account, and only if
// the transaction passed that account to the program.
//
// The allocator must be live before the platform deserializes accounts (that
// step allocates), so the size has to be found first, with no allocation at
// all. Scan walks the input with a bounds-checked cursor:
//
//	input ──► account entries ──► instructions sysvar data
//	                                 │
//	                                 ▼
//	          instruction[i].program == ComputeBudget ?
//	                                 │
//	                                 ▼
//	          data == RequestHeapFrame(u32) ?  ──► size
//
// # Failure handling
//
// Nothing here returns an error. Any structural problem (a length that runs
// past the buffer, a truncated instruction) ends the scan and the caller gets
// format.MinHeapLength, which the platform always provides.
//
// # Example
//
//	func entrypoint(input []byte) {
//	    size := heapsize.ExtractHeapSize(input)
//	    // initialize the allocator with size before anything allocates
//	}
package heapsize
