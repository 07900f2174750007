package bump

import "fmt"

// Fault is the panic value raised when the program touches heap addresses the
// host never mapped. It is the Go rendering of the VM's access violation:
// the allocator trusts the heap length it was given, so a length larger than
// the real heap is only caught when memory is touched.
type Fault struct {
	Addr   uint64 // first faulting virtual address
	Len    uint64 // size of the attempted access
	Mapped uint64 // number of bytes actually backed by host memory
}

func (f *Fault) Error() string {
	return fmt.Sprintf("bump: access violation at %#x (+%d), %d bytes mapped", f.Addr, f.Len, f.Mapped)
}
