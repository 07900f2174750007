// Package entrypoint wires the heap together in the order the VM requires.
//
// A program's entrypoint receives the raw input buffer and must have a working
// allocator before anything allocates. Run performs the start-up sequence:
//
//  1. heapsize.Scan finds the heap length in the raw input (no allocation).
//  2. global.Reserve carves the global-state slot off the heap start.
//  3. bump.New takes the rest of the heap.
//  4. The invocation is published so Heap and Global work.
//  5. The program's handler runs.
//
// Exactly one invocation runs at a time; its allocator is never swapped out
// while it runs.
//
// # Example
//
//	type State struct{ Calls uint64 }
//
//	err := entrypoint.Run(ctx, input, entrypoint.DefaultOptions(),
//	    func(inv *entrypoint.Invocation[State]) error {
//	        entrypoint.Global[State]().Calls++
//	        p, err := entrypoint.Heap().Alloc(128, 8)
//	        ...
//	    })
package entrypoint
