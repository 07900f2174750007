package bump

// Stats counts allocator activity for diagnostics.
type Stats struct {
	Allocs         uint64 // successful non-empty allocations
	ZeroSize       uint64 // zero-size allocations served by the sentinel
	Reclaimed      uint64 // frees that moved the cursor back
	Leaked         uint64 // frees of blocks that were not the last allocation
	LeakedBytes    uint64
	ResizedInPlace uint64
	Moved          uint64 // resizes served by allocate, copy and free
	OutOfMemory    uint64
	Used           uint64 // cursor at snapshot time
	Peak           uint64 // highest cursor ever reached
}
